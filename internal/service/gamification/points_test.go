package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return cfg
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestPointsCalculator_FreshSurvey(t *testing.T) {
	// Анкета создана 30 минут назад, не особая, 3 ответа, активность сейчас
	// -> ставка 20, итог 60
	pc := NewPointsCalculator(testConfig())
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	survey := &entity.Survey{
		CreatedAt: timePtr(now.Add(-30 * time.Minute)),
	}

	points := pc.Compute(survey, 3, timePtr(now), now)

	assert.Equal(t, 60, points)
}

func TestPointsCalculator_SpecialAndWelcomeBack(t *testing.T) {
	// Анкета создана 2 часа назад, особая, 2 ответа, активность 10 дней назад
	// -> ставка 15+10+20=45, итог 90
	pc := NewPointsCalculator(testConfig())
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	survey := &entity.Survey{
		CreatedAt: timePtr(now.Add(-2 * time.Hour)),
		IsSpecial: true,
	}

	points := pc.Compute(survey, 2, timePtr(now.AddDate(0, 0, -10)), now)

	assert.Equal(t, 90, points)
}

func TestPointsCalculator_ZeroAnswers(t *testing.T) {
	pc := NewPointsCalculator(testConfig())
	now := time.Now()
	survey := &entity.Survey{CreatedAt: timePtr(now.Add(-time.Minute))}

	assert.Equal(t, 0, pc.Compute(survey, 0, nil, now))
}

func TestPointsCalculator_UnknownCreatedAt(t *testing.T) {
	// Дата создания неизвестна -> обычная ставка, без надбавки за скорость
	pc := NewPointsCalculator(testConfig())
	now := time.Now()
	survey := &entity.Survey{}

	assert.Equal(t, 15, pc.Compute(survey, 1, timePtr(now), now))
}

func TestPointsCalculator_WelcomeBackThreshold(t *testing.T) {
	pc := NewPointsCalculator(testConfig())
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	survey := &entity.Survey{CreatedAt: timePtr(now.Add(-2 * time.Hour))}

	tests := []struct {
		name         string
		lastActivity time.Time
		want         int
	}{
		{"ровно 7 дней - надбавка действует", now.AddDate(0, 0, -7), 35},
		{"6 дней с хвостом - надбавки нет", now.Add(-6*24*time.Hour - 23*time.Hour), 15},
		{"вчера - надбавки нет", now.AddDate(0, 0, -1), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pc.Compute(survey, 1, timePtr(tt.lastActivity), now))
		})
	}
}

func TestPointsCalculator_MonotonicInAnsweredCount(t *testing.T) {
	// Очки неотрицательны и не убывают с ростом числа ответов
	pc := NewPointsCalculator(testConfig())
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	survey := &entity.Survey{
		CreatedAt: timePtr(now.Add(-10 * time.Minute)),
		IsSpecial: true,
	}

	prev := 0
	for count := 0; count <= 50; count++ {
		points := pc.Compute(survey, count, timePtr(now.AddDate(0, 0, -30)), now)
		assert.GreaterOrEqual(t, points, 0)
		assert.GreaterOrEqual(t, points, prev, "очки не должны убывать при count=%d", count)
		prev = points
	}
}
