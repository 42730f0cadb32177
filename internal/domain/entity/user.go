package entity

import (
	"time"
)

// User представляет пользователя в системе
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Username         string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email            string     `gorm:"size:100;not null;default:''" json:"email"`
	ProfilePicture   string     `gorm:"size:255;not null;default:''" json:"profile_picture"`
	Points           int64      `gorm:"not null;default:0;index:idx_users_ranking" json:"points"`
	CompletedSurveys int64      `gorm:"not null;default:0" json:"completed_surveys"`
	LastActivity     *time.Time `gorm:"type:timestamp" json:"last_activity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// DaysSinceLastActivity возвращает полное число дней с момента последней
// активности пользователя. Если активности не было, возвращает -1.
func (u *User) DaysSinceLastActivity(now time.Time) int {
	if u.LastActivity == nil {
		return -1
	}
	diff := now.Sub(*u.LastActivity)
	if diff < 0 {
		return 0
	}
	return int(diff / (24 * time.Hour))
}
