package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
	redisRepo "github.com/yourusername/survey-api/internal/repository/redis"
	"github.com/yourusername/survey-api/internal/service/gamification"
)

// submissionLockTTL - окно дедупликации повторной отправки той же анкеты
// (двойное нажатие, гонка двух устройств)
const submissionLockTTL = 10 * time.Second

// SubmittedAnswer представляет ответ на один вопрос при отправке анкеты.
// Для вопросов с множественным выбором Values содержит все выбранные варианты.
type SubmittedAnswer struct {
	QuestionID uint
	Values     []string
}

// SubmissionResult - итог обработки отправки для уведомления пользователя
type SubmissionResult struct {
	PointsEarned int
	TotalPoints  int64
	Streak       int
	NewBadges    []entity.BadgeDefinition
}

// GamificationService - точка входа движка геймификации. Вызывается один
// раз на отправку анкеты: начисляет очки, пишет журналы активности,
// оценивает бейджи и сохраняет подтвержденные награды.
type GamificationService struct {
	userRepo       repository.UserRepository
	surveyRepo     repository.SurveyRepository
	completionRepo repository.CompletionRepository
	responseRepo   repository.ResponseRepository
	badgeRepo      repository.BadgeRepository
	cacheRepo      repository.CacheRepository

	config    *gamification.Config
	points    *gamification.PointsCalculator
	streak    *gamification.StreakCalculator
	evaluator *gamification.BadgeEvaluator

	// now подменяется в тестах
	now func() time.Time
}

// NewGamificationService создает новый сервис геймификации
func NewGamificationService(
	userRepo repository.UserRepository,
	surveyRepo repository.SurveyRepository,
	completionRepo repository.CompletionRepository,
	responseRepo repository.ResponseRepository,
	badgeRepo repository.BadgeRepository,
	cacheRepo repository.CacheRepository,
	config *gamification.Config,
) *GamificationService {
	if config == nil {
		config = gamification.DefaultConfig()
	}
	return &GamificationService{
		userRepo:       userRepo,
		surveyRepo:     surveyRepo,
		completionRepo: completionRepo,
		responseRepo:   responseRepo,
		badgeRepo:      badgeRepo,
		cacheRepo:      cacheRepo,
		config:         config,
		points:         gamification.NewPointsCalculator(config),
		streak:         gamification.NewStreakCalculator(config),
		evaluator:      gamification.NewBadgeEvaluator(config),
		now:            time.Now,
	}
}

// OnSurveySubmitted обрабатывает отправку заполненной анкеты.
//
// Последовательность: валидация -> очки -> атомарное обновление статистики
// -> журналы завершений и ответов -> снимок активности -> оценка бейджей
// -> вставка наград. Шаги не ретраятся; ошибка любого шага уходит
// вызывающему. Если статистика уже обновлена, а оценка бейджей упала,
// очки сохраняются - повторная оценка бейджей безопасна, она идемпотентна.
func (s *GamificationService) OnSurveySubmitted(
	ctx context.Context,
	userID uint,
	surveyID uint,
	answers []SubmittedAnswer,
	timeTakenSeconds int,
) (*SubmissionResult, error) {
	// === 1. Валидация (до любых мутаций) ===
	if surveyID == 0 {
		return nil, fmt.Errorf("%w: survey id is required", apperrors.ErrValidation)
	}
	answered := filterAnswered(answers)
	if len(answered) == 0 {
		return nil, fmt.Errorf("%w: at least one answer is required", apperrors.ErrValidation)
	}

	now := s.now()

	// === 2. Дедупликация повторной отправки через SetNX ===
	lockKey := fmt.Sprintf("%suser:%d:survey:%d", redisRepo.SubmissionLockPrefix, userID, surveyID)
	locked, err := s.cacheRepo.SetNX(lockKey, "1", submissionLockTTL)
	if err != nil {
		// Кеш недоступен - продолжаем без дедупликации, уникальное
		// ограничение на бейджах защитит от двойных наград
		log.Printf("[GamificationService] WARNING: SetNX для %s недоступен: %v", lockKey, err)
	} else if !locked {
		log.Printf("[GamificationService] Повторная отправка анкеты #%d пользователем #%d в окне дедупликации", surveyID, userID)
		return nil, apperrors.ErrAlreadySubmitted
	}

	// === 3. Загрузка анкеты и пользователя ===
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey %d: %w", surveyID, err)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	// === 4. Расчет очков (по lastActivity ДО обновления) ===
	pointsEarned := s.points.Compute(survey, len(answered), user.LastActivity, now)

	// === 5. Атомарное обновление статистики пользователя ===
	updated, err := s.userRepo.ApplySubmission(userID, int64(pointsEarned), now)
	if err != nil {
		return nil, fmt.Errorf("failed to apply submission stats: %w", err)
	}
	log.Printf("[GamificationService] Пользователь #%d: +%d очков за анкету #%d (итого %d)",
		userID, pointsEarned, surveyID, updated.Points)

	// === 6. Журнал завершений ===
	completion := &entity.SurveyCompletion{
		UserID:           userID,
		SurveyID:         surveyID,
		TimeTakenSeconds: timeTakenSeconds,
		CompletedAt:      now,
	}
	if err := s.completionRepo.Append(completion); err != nil {
		// Очки уже начислены и не откатываются
		return nil, fmt.Errorf("failed to append completion: %w", err)
	}

	// === 7. Журнал ответов (по строке на выбранный вариант) ===
	events := make([]entity.ResponseEvent, 0, len(answered))
	for _, a := range answered {
		for _, v := range a.Values {
			events = append(events, entity.ResponseEvent{
				UserID:     userID,
				SurveyID:   surveyID,
				QuestionID: a.QuestionID,
				Response:   v,
				CreatedAt:  now,
			})
		}
	}
	if err := s.responseRepo.AppendBatch(events); err != nil {
		return nil, fmt.Errorf("failed to append responses: %w", err)
	}

	// === 8. Снимок активности и оценка бейджей ===
	snapshot, err := s.buildSnapshot(userID, updated.CompletedSurveys, len(answered), timeTakenSeconds, now)
	if err != nil {
		return nil, err
	}

	earned, err := s.badgeRepo.GetEarnedBadgeIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load earned badges: %w", err)
	}
	catalog, err := s.badgeRepo.GetCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}

	candidates := s.evaluator.Evaluate(catalog, earned, snapshot)

	// === 9. Вставка наград; подтверждаются только реально вставленные ===
	var newBadges []entity.BadgeDefinition
	for _, badge := range candidates {
		inserted, err := s.badgeRepo.InsertAwardIfAbsent(userID, badge.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert badge award %d: %w", badge.ID, err)
		}
		if !inserted {
			// Конкурентная оценка уже вставила награду - штатный исход
			log.Printf("[GamificationService] Бейдж #%d пользователя #%d уже вставлен конкурентно", badge.ID, userID)
			continue
		}
		log.Printf("[GamificationService] Пользователь #%d получил бейдж %q (#%d)", userID, badge.Name, badge.ID)
		newBadges = append(newBadges, badge)
	}

	return &SubmissionResult{
		PointsEarned: pointsEarned,
		TotalPoints:  updated.Points,
		Streak:       s.streak.Compute(snapshot.CompletionTimes, now),
		NewBadges:    newBadges,
	}, nil
}

// buildSnapshot собирает агрегированный снимок активности пользователя
func (s *GamificationService) buildSnapshot(
	userID uint,
	surveyCount int64,
	answeredCount int,
	timeTakenSeconds int,
	now time.Time,
) (*gamification.ActivitySnapshot, error) {
	windowStart := now.AddDate(0, 0, -s.config.WeeklyWindowDays)
	responsesInWeek, err := s.responseRepo.CountSince(userID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly responses: %w", err)
	}

	var latestPtr *time.Time
	latest, err := s.responseRepo.LatestResponseTime(userID)
	if err == nil {
		latestPtr = &latest
	} else if err != apperrors.ErrNotFound {
		return nil, fmt.Errorf("failed to get latest response time: %w", err)
	}

	completionTimes, err := s.completionRepo.GetCompletionTimes(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion times: %w", err)
	}

	return s.evaluator.BuildSnapshot(gamification.BuildSnapshotInput{
		SurveyCount:           surveyCount,
		ResponsesInWeek:       responsesInWeek,
		LatestResponseAt:      latestPtr,
		TimeTakenSeconds:      timeTakenSeconds,
		AnsweredQuestionCount: answeredCount,
		CompletionTimes:       completionTimes,
	}, now), nil
}

// filterAnswered отбрасывает пустые ответы
func filterAnswered(answers []SubmittedAnswer) []SubmittedAnswer {
	result := make([]SubmittedAnswer, 0, len(answers))
	for _, a := range answers {
		values := make([]string, 0, len(a.Values))
		for _, v := range a.Values {
			if v != "" {
				values = append(values, v)
			}
		}
		if a.QuestionID != 0 && len(values) > 0 {
			result = append(result, SubmittedAnswer{QuestionID: a.QuestionID, Values: values})
		}
	}
	return result
}
