package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// CompletionRepo реализует repository.CompletionRepository
type CompletionRepo struct {
	db *gorm.DB
}

// NewCompletionRepo создает новый репозиторий завершений анкет
func NewCompletionRepo(db *gorm.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// Append добавляет запись о завершении анкеты
func (r *CompletionRepo) Append(completion *entity.SurveyCompletion) error {
	return r.db.Create(completion).Error
}

// GetCompletionTimes возвращает отметки времени завершений пользователя
// в порядке возрастания
func (r *CompletionRepo) GetCompletionTimes(userID uint) ([]time.Time, error) {
	var times []time.Time
	err := r.db.Model(&entity.SurveyCompletion{}).
		Where("user_id = ?", userID).
		Order("completed_at ASC").
		Pluck("completed_at", &times).Error
	return times, err
}

// CountByUser возвращает количество завершений пользователя
func (r *CompletionRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.SurveyCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ResponseRepo реализует repository.ResponseRepository
type ResponseRepo struct {
	db *gorm.DB
}

// NewResponseRepo создает новый репозиторий ответов
func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// AppendBatch сохраняет пакет ответов одной вставкой
func (r *ResponseRepo) AppendBatch(responses []entity.ResponseEvent) error {
	if len(responses) == 0 {
		return nil
	}
	return r.db.Create(&responses).Error
}

// GetResponsesSince возвращает ответы пользователя начиная с указанного времени
func (r *ResponseRepo) GetResponsesSince(userID uint, since time.Time) ([]entity.ResponseEvent, error) {
	var responses []entity.ResponseEvent
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}

// CountSince возвращает количество ответов пользователя начиная с указанного времени
func (r *ResponseRepo) CountSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entity.ResponseEvent{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// LatestResponseTime возвращает время последнего ответа пользователя
func (r *ResponseRepo) LatestResponseTime(userID uint) (time.Time, error) {
	var response entity.ResponseEvent
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, err
	}
	return response.CreatedAt, nil
}
