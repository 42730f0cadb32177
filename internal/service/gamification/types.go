package gamification

import (
	"time"
)

// Константы значений по умолчанию
const (
	DefaultBasePointsPerAnswer  = 15
	DefaultFreshPointsPerAnswer = 20
	DefaultSpecialBonus         = 10
	DefaultWelcomeBackBonus     = 20
	DefaultWelcomeBackDays      = 7
	DefaultWeeklyWindowDays     = 7
	DefaultTimezone             = "Europe/Warsaw"
)

// Config содержит настройки движка геймификации
type Config struct {
	// Ставки начисления очков (за один отвеченный вопрос)
	BasePointsPerAnswer  int // Базовая ставка
	FreshPointsPerAnswer int // Ставка для свежей анкеты (младше FreshSurveyWindow)
	SpecialBonus         int // Надбавка за особую анкету
	WelcomeBackBonus     int // Надбавка за возвращение после перерыва

	// Окна и пороги
	FreshSurveyWindow time.Duration // Возраст анкеты, до которого действует повышенная ставка
	WelcomeBackDays   int           // Минимальный перерыв в днях для welcome-back надбавки
	WeeklyWindowDays  int           // Окно расчета среднего дневного числа ответов

	// Location задает часовой пояс нормализации календарных дней.
	// Все расчеты серии и дней недели используют его, чтобы
	// полуночная граница была одинаковой для всех вызовов.
	Location *time.Location
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &Config{
		BasePointsPerAnswer:  DefaultBasePointsPerAnswer,
		FreshPointsPerAnswer: DefaultFreshPointsPerAnswer,
		SpecialBonus:         DefaultSpecialBonus,
		WelcomeBackBonus:     DefaultWelcomeBackBonus,
		FreshSurveyWindow:    time.Hour,
		WelcomeBackDays:      DefaultWelcomeBackDays,
		WeeklyWindowDays:     DefaultWeeklyWindowDays,
		Location:             loc,
	}
}

// ActivitySnapshot агрегирует производные метрики активности пользователя
// для одного прохода оценки бейджей. Снимок собирается оркестратором
// ПОСЛЕ применения отправки (surveyCount уже инкрементирован).
type ActivitySnapshot struct {
	SurveyCount            int64       // Всего завершенных анкет (включая текущую)
	ResponsesInWeek        int64       // Ответов за последние WeeklyWindowDays дней
	AverageDailyResponses  float64     // ResponsesInWeek / WeeklyWindowDays
	MostRecentResponseHour int         // Час (0-23) последнего ответа; -1, если ответов нет
	TimeTakenSeconds       int         // Время прохождения текущей анкеты; 0, если не измерялось
	AnsweredQuestionCount  int         // Отвечено вопросов в текущей анкете
	CompletionTimes        []time.Time // Журнал завершений для расчета серии
	TodayWeekday           int         // День недели (0=воскресенье .. 6=суббота)
	Now                    time.Time   // Момент оценки
}
