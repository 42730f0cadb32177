package repository

import (
	"github.com/yourusername/survey-api/internal/domain/entity"
)

// SurveyRepository определяет методы для работы с анкетами
type SurveyRepository interface {
	Create(survey *entity.Survey) error
	GetByID(id uint) (*entity.Survey, error)
	GetWithQuestions(id uint) (*entity.Survey, error)
	ListVisible(limit, offset int) ([]entity.Survey, error)
	AddQuestions(surveyID uint, questions []entity.Question) error
}
