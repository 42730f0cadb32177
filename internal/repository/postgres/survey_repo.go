package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// SurveyRepo реализует repository.SurveyRepository
type SurveyRepo struct {
	db *gorm.DB
}

// NewSurveyRepo создает новый репозиторий анкет
func NewSurveyRepo(db *gorm.DB) *SurveyRepo {
	return &SurveyRepo{db: db}
}

// Create создает новую анкету
func (r *SurveyRepo) Create(survey *entity.Survey) error {
	return r.db.Create(survey).Error
}

// GetByID возвращает анкету по ID без вопросов
func (r *SurveyRepo) GetByID(id uint) (*entity.Survey, error) {
	var survey entity.Survey
	err := r.db.First(&survey, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// GetWithQuestions возвращает анкету вместе с вопросами в порядке позиций
func (r *SurveyRepo) GetWithQuestions(id uint) (*entity.Survey, error) {
	var survey entity.Survey
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC, questions.id ASC")
	}).First(&survey, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// ListVisible возвращает видимые пользователям анкеты с пагинацией
func (r *SurveyRepo) ListVisible(limit, offset int) ([]entity.Survey, error) {
	var surveys []entity.Survey
	err := r.db.Where("is_visible = ?", true).
		Order("created_at DESC NULLS LAST, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&surveys).Error
	return surveys, err
}

// AddQuestions добавляет вопросы к анкете
func (r *SurveyRepo) AddQuestions(surveyID uint, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].SurveyID = surveyID
	}
	return r.db.Create(&questions).Error
}
