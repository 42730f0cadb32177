package gamification

import (
	"sort"
	"time"
)

// StreakCalculator считает текущую серию - число последовательных
// календарных дней с хотя бы одним завершением анкеты, заканчивающихся
// сегодня или вчера.
type StreakCalculator struct {
	config *Config
}

// NewStreakCalculator создает новый калькулятор серии
func NewStreakCalculator(config *Config) *StreakCalculator {
	return &StreakCalculator{config: config}
}

// Compute возвращает длину текущей серии по журналу завершений.
// Порядок отметок на входе не важен. Несколько завершений в один
// календарный день считаются одним днем. Если последний день серии
// раньше, чем вчера, серия прервана - возвращается 0.
func (sc *StreakCalculator) Compute(completionTimes []time.Time, now time.Time) int {
	if len(completionTimes) == 0 {
		return 0
	}

	loc := sc.config.Location

	// Нормализуем к календарным дням и убираем дубликаты
	daySet := make(map[time.Time]struct{}, len(completionTimes))
	for _, t := range completionTimes {
		daySet[truncateToDay(t, loc)] = struct{}{}
	}

	days := make([]time.Time, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	today := truncateToDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)

	latest := days[len(days)-1]
	if !latest.Equal(today) && !latest.Equal(yesterday) {
		return 0
	}

	// Идем назад от последнего дня, пока дни идут подряд
	streak := 1
	for i := len(days) - 2; i >= 0; i-- {
		if days[i].Equal(days[i+1].AddDate(0, 0, -1)) {
			streak++
			continue
		}
		break
	}

	return streak
}

// truncateToDay приводит отметку времени к началу календарного дня
// в заданном часовом поясе
func truncateToDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
