package entity

import (
	"time"
)

// Level представляет уровень (ранг) пользователя по накопленным очкам
type Level struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    string    `gorm:"size:255;not null;default:''" json:"description"`
	RequiredPoints int64     `gorm:"not null;index" json:"required_points"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Level) TableName() string {
	return "levels"
}
