package entity

import (
	"time"
)

// Survey представляет анкету
type Survey struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PublicID    string     `gorm:"size:36;not null;uniqueIndex" json:"public_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"size:1000;not null;default:''" json:"description"`
	IsSpecial   bool       `gorm:"not null;default:false" json:"is_special"`
	IsVisible   bool       `gorm:"not null;default:true" json:"is_visible"`
	CreatedAt   *time.Time `gorm:"type:timestamp" json:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Questions []Question `gorm:"foreignKey:SurveyID" json:"questions,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Survey) TableName() string {
	return "surveys"
}

// AgeAt возвращает возраст анкеты на момент now.
// Если дата создания неизвестна (legacy-записи), возвращает false вторым значением.
func (s *Survey) AgeAt(now time.Time) (time.Duration, bool) {
	if s.CreatedAt == nil {
		return 0, false
	}
	return now.Sub(*s.CreatedAt), true
}
