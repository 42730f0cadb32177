package entity

import (
	"time"
)

// ResponseEvent представляет один сохраненный ответ на вопрос анкеты.
// Для вопросов с множественным выбором каждый выбранный вариант
// сохраняется отдельной строкой (как в таблице responses).
type ResponseEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_responses_user_time" json:"user_id"`
	SurveyID   uint      `gorm:"not null;index" json:"survey_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Response   string    `gorm:"size:1000;not null" json:"response"`
	CreatedAt  time.Time `gorm:"not null;index:idx_responses_user_time" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (ResponseEvent) TableName() string {
	return "responses"
}
