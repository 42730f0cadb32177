package entity

import (
	"time"
)

// Типы условий получения бейджей. Значение condition трактуется по типу:
// порог количества, порог секунд, час суток (0-23) или день недели (0-6).
const (
	BadgeTypeSurveyCount       = "survey_count"
	BadgeTypeWeeklyAverage     = "weekly_average"
	BadgeTypeTimeBased         = "time_based"
	BadgeTypeSpeed             = "speed"
	BadgeTypeNumberOfQuestions = "number_of_questions"
	BadgeTypeSlow              = "slow"
	BadgeTypeWeekDay           = "week_day"
	BadgeTypeStreak            = "streak"
)

// BadgeDefinition представляет определение бейджа из каталога
type BadgeDefinition struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255;not null;default:''" json:"description"`
	Icon        string    `gorm:"size:100;not null;default:''" json:"icon"`
	Type        string    `gorm:"size:30;not null;index" json:"type"`
	Condition   float64   `gorm:"not null" json:"condition"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (BadgeDefinition) TableName() string {
	return "badges"
}

// UserBadge представляет полученный пользователем бейдж.
// Инвариант: не более одной записи на пару (user_id, badge_id),
// обеспечивается уникальным ограничением в БД. Бейдж не отзывается.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:uniq_user_badge" json:"user_id"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:uniq_user_badge" json:"badge_id"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`

	Badge BadgeDefinition `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (UserBadge) TableName() string {
	return "user_badges"
}
