package gamification

import (
	"log"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// predicate проверяет, выполнено ли условие бейджа для снимка активности
type predicate func(snapshot *ActivitySnapshot, condition float64) bool

// BadgeEvaluator оценивает каталог бейджей по снимку активности пользователя.
// Диспетчеризация по типу условия идет через таблицу предикатов: новый тип
// бейджа - это новая запись в таблице, а не правка цепочки if/else.
type BadgeEvaluator struct {
	config     *Config
	streak     *StreakCalculator
	predicates map[string]predicate
}

// NewBadgeEvaluator создает новый оценщик бейджей
func NewBadgeEvaluator(config *Config) *BadgeEvaluator {
	ev := &BadgeEvaluator{
		config: config,
		streak: NewStreakCalculator(config),
	}

	ev.predicates = map[string]predicate{
		entity.BadgeTypeSurveyCount: func(s *ActivitySnapshot, cond float64) bool {
			return float64(s.SurveyCount) >= cond
		},
		entity.BadgeTypeWeeklyAverage: func(s *ActivitySnapshot, cond float64) bool {
			return s.AverageDailyResponses >= cond
		},
		entity.BadgeTypeNumberOfQuestions: func(s *ActivitySnapshot, cond float64) bool {
			return float64(s.AnsweredQuestionCount) >= cond
		},
		entity.BadgeTypeSpeed: func(s *ActivitySnapshot, cond float64) bool {
			return s.TimeTakenSeconds > 0 && float64(s.TimeTakenSeconds) < cond
		},
		entity.BadgeTypeSlow: func(s *ActivitySnapshot, cond float64) bool {
			return float64(s.TimeTakenSeconds) > cond
		},
		entity.BadgeTypeWeekDay: func(s *ActivitySnapshot, cond float64) bool {
			return float64(s.TodayWeekday) == cond
		},
		entity.BadgeTypeTimeBased: func(s *ActivitySnapshot, cond float64) bool {
			return s.MostRecentResponseHour >= 0 && float64(s.MostRecentResponseHour) < cond
		},
		entity.BadgeTypeStreak: func(s *ActivitySnapshot, cond float64) bool {
			return float64(ev.streak.Compute(s.CompletionTimes, s.Now)) >= cond
		},
	}

	return ev
}

// Evaluate делает один проход по каталогу и возвращает бейджи, условия
// которых выполнены и которые пользователь еще не получал.
//
// Особое правило для time_based: за один проход присуждается только ОДИН
// такой бейдж - с наименьшим значением condition среди выполненных
// (при равенстве побеждает первый по порядку каталога). Остальные типы
// присуждаются независимо друг от друга.
//
// Оценщик только отбирает кандидатов; вставку наград и защиту от
// конкурентного дублирования выполняет вызывающая сторона.
func (ev *BadgeEvaluator) Evaluate(
	catalog []entity.BadgeDefinition,
	earned map[uint]struct{},
	snapshot *ActivitySnapshot,
) []entity.BadgeDefinition {
	var awarded []entity.BadgeDefinition
	var bestTimeBased *entity.BadgeDefinition

	for i := range catalog {
		badge := catalog[i]

		// Уже полученные бейджи не пере-оцениваются никогда
		if _, ok := earned[badge.ID]; ok {
			continue
		}

		check, ok := ev.predicates[badge.Type]
		if !ok {
			log.Printf("[BadgeEvaluator] WARNING: неизвестный тип бейджа %q (id=%d), пропуск", badge.Type, badge.ID)
			continue
		}

		if !check(snapshot, badge.Condition) {
			continue
		}

		if badge.Type == entity.BadgeTypeTimeBased {
			if bestTimeBased == nil || badge.Condition < bestTimeBased.Condition {
				copied := badge
				bestTimeBased = &copied
			}
			continue
		}

		awarded = append(awarded, badge)
	}

	if bestTimeBased != nil {
		awarded = append(awarded, *bestTimeBased)
	}

	return awarded
}

// BuildSnapshotInput содержит сырые данные для сборки снимка активности
type BuildSnapshotInput struct {
	SurveyCount           int64
	ResponsesInWeek       int64
	LatestResponseAt      *time.Time
	TimeTakenSeconds      int
	AnsweredQuestionCount int
	CompletionTimes       []time.Time
}

// BuildSnapshot собирает снимок активности из сырых данных хранилища
func (ev *BadgeEvaluator) BuildSnapshot(in BuildSnapshotInput, now time.Time) *ActivitySnapshot {
	hour := -1
	if in.LatestResponseAt != nil {
		hour = in.LatestResponseAt.In(ev.config.Location).Hour()
	}

	windowDays := ev.config.WeeklyWindowDays
	if windowDays <= 0 {
		windowDays = DefaultWeeklyWindowDays
	}

	return &ActivitySnapshot{
		SurveyCount:            in.SurveyCount,
		ResponsesInWeek:        in.ResponsesInWeek,
		AverageDailyResponses:  float64(in.ResponsesInWeek) / float64(windowDays),
		MostRecentResponseHour: hour,
		TimeTakenSeconds:       in.TimeTakenSeconds,
		AnsweredQuestionCount:  in.AnsweredQuestionCount,
		CompletionTimes:        in.CompletionTimes,
		TodayWeekday:           int(now.In(ev.config.Location).Weekday()),
		Now:                    now,
	}
}
