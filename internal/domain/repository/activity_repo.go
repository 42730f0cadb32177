package repository

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// CompletionRepository определяет методы для журнала завершенных анкет
type CompletionRepository interface {
	Append(completion *entity.SurveyCompletion) error
	// GetCompletionTimes возвращает отметки времени всех завершений
	// пользователя в порядке возрастания. Основа расчета серии.
	GetCompletionTimes(userID uint) ([]time.Time, error)
	CountByUser(userID uint) (int64, error)
}

// ResponseRepository определяет методы для журнала ответов на вопросы
type ResponseRepository interface {
	AppendBatch(responses []entity.ResponseEvent) error
	GetResponsesSince(userID uint, since time.Time) ([]entity.ResponseEvent, error)
	CountSince(userID uint, since time.Time) (int64, error)
	// LatestResponseTime возвращает время последнего ответа пользователя.
	// Если ответов нет, возвращает apperrors.ErrNotFound.
	LatestResponseTime(userID uint) (time.Time, error)
}
