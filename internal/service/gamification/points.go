package gamification

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// PointsCalculator рассчитывает очки за завершенную анкету.
// Чистая функция: результат зависит только от аргументов и конфигурации.
type PointsCalculator struct {
	config *Config
}

// NewPointsCalculator создает новый калькулятор очков
func NewPointsCalculator(config *Config) *PointsCalculator {
	return &PointsCalculator{config: config}
}

// Compute возвращает очки за анкету с answeredCount отвеченными вопросами.
// Ставка за вопрос складывается из базы и надбавок, затем умножается на
// количество ответов. Надбавки повышают ставку ЗА КАЖДЫЙ вопрос, а не
// начисляются разово - так считал исходный клиент, и поведение сохранено.
func (pc *PointsCalculator) Compute(survey *entity.Survey, answeredCount int, lastActivity *time.Time, now time.Time) int {
	if answeredCount <= 0 {
		return 0
	}

	// База: повышенная ставка для свежей анкеты. Если дата создания
	// неизвестна, действует обычная ставка без надбавки за скорость.
	rate := pc.config.BasePointsPerAnswer
	if age, ok := survey.AgeAt(now); ok && age < pc.config.FreshSurveyWindow {
		rate = pc.config.FreshPointsPerAnswer
	}

	if survey.IsSpecial {
		rate += pc.config.SpecialBonus
	}

	// Надбавка за возвращение: полных дней неактивности >= порога
	if lastActivity != nil {
		days := int(now.Sub(*lastActivity) / (24 * time.Hour))
		if days >= pc.config.WelcomeBackDays {
			rate += pc.config.WelcomeBackBonus
		}
	}

	points := answeredCount * rate
	if points < 0 {
		return 0
	}
	return points
}
