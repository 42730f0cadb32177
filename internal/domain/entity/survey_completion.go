package entity

import (
	"time"
)

// SurveyCompletion представляет факт завершения анкеты пользователем.
// Записи только добавляются - по ним считается серия (streak).
type SurveyCompletion struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index:idx_completions_user_time" json:"user_id"`
	SurveyID         uint      `gorm:"not null;index" json:"survey_id"`
	TimeTakenSeconds int       `gorm:"not null;default:0" json:"time_taken_seconds"`
	CompletedAt      time.Time `gorm:"not null;index:idx_completions_user_time" json:"completed_at"`
}

// TableName определяет имя таблицы для GORM
func (SurveyCompletion) TableName() string {
	return "completed_surveys"
}
