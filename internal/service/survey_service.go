package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	"github.com/yourusername/survey-api/internal/handler/dto"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// SurveyService предоставляет методы для работы с каталогом анкет
type SurveyService struct {
	surveyRepo repository.SurveyRepository

	now func() time.Time
}

// NewSurveyService создает новый сервис анкет
func NewSurveyService(surveyRepo repository.SurveyRepository) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
		now:        time.Now,
	}
}

// CreateSurvey создает анкету с вопросами. Публичный идентификатор
// генерируется сервером и не принимается от клиента.
func (s *SurveyService) CreateSurvey(req *dto.CreateSurveyRequest) (*entity.Survey, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}

	now := s.now()
	survey := &entity.Survey{
		PublicID:    uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		IsSpecial:   req.IsSpecial,
		IsVisible:   req.IsVisible,
		CreatedAt:   &now,
	}

	for i, q := range req.Questions {
		question, err := buildQuestion(q, i+1)
		if err != nil {
			return nil, err
		}
		survey.Questions = append(survey.Questions, *question)
	}

	if err := s.surveyRepo.Create(survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	log.Printf("[SurveyService] Создана анкета #%d (%s) с %d вопросами", survey.ID, survey.PublicID, len(survey.Questions))
	return survey, nil
}

// AddQuestions добавляет вопросы в существующую анкету, продолжая нумерацию позиций
func (s *SurveyService) AddQuestions(surveyID uint, payloads []dto.QuestionPayload) (*entity.Survey, error) {
	if len(payloads) == 0 {
		return nil, fmt.Errorf("%w: at least one question is required", apperrors.ErrValidation)
	}

	survey, err := s.surveyRepo.GetWithQuestions(surveyID)
	if err != nil {
		return nil, err
	}

	questions := make([]entity.Question, 0, len(payloads))
	for i, q := range payloads {
		question, err := buildQuestion(q, len(survey.Questions)+i+1)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}

	if err := s.surveyRepo.AddQuestions(surveyID, questions); err != nil {
		return nil, fmt.Errorf("failed to add questions: %w", err)
	}

	return s.surveyRepo.GetWithQuestions(surveyID)
}

// ListVisible возвращает страницу видимых анкет
func (s *SurveyService) ListVisible(limit, offset int) ([]dto.SurveyResponse, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	surveys, err := s.surveyRepo.ListVisible(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}

	result := make([]dto.SurveyResponse, 0, len(surveys))
	for _, sv := range surveys {
		result = append(result, surveyToDTO(&sv))
	}
	return result, nil
}

// GetWithQuestions возвращает анкету с вопросами в порядке позиций
func (s *SurveyService) GetWithQuestions(id uint) (*dto.SurveyDetailResponse, error) {
	survey, err := s.surveyRepo.GetWithQuestions(id)
	if err != nil {
		return nil, err
	}

	detail := &dto.SurveyDetailResponse{
		SurveyResponse: surveyToDTO(survey),
		Questions:      make([]dto.QuestionResponse, 0, len(survey.Questions)),
	}
	for _, q := range survey.Questions {
		detail.Questions = append(detail.Questions, dto.QuestionResponse{
			ID:       q.ID,
			Text:     q.Text,
			Type:     q.Type,
			Options:  q.Options,
			ImageURL: q.ImageURL,
			Position: q.Position,
		})
	}
	return detail, nil
}

// buildQuestion валидирует и собирает вопрос из запроса
func buildQuestion(q dto.QuestionPayload, position int) (*entity.Question, error) {
	switch q.Type {
	case entity.QuestionTypeText, entity.QuestionTypeSlider:
		// Варианты не требуются
	case entity.QuestionTypeSingle, entity.QuestionTypeMulti:
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %q requires at least two options", apperrors.ErrValidation, q.Text)
		}
	default:
		return nil, fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, q.Type)
	}

	return &entity.Question{
		Text:     q.Text,
		Type:     q.Type,
		Options:  q.Options,
		ImageURL: q.ImageURL,
		Position: position,
	}, nil
}

// surveyToDTO конвертирует анкету в DTO списка
func surveyToDTO(s *entity.Survey) dto.SurveyResponse {
	return dto.SurveyResponse{
		ID:            s.ID,
		PublicID:      s.PublicID,
		Title:         s.Title,
		Description:   s.Description,
		IsSpecial:     s.IsSpecial,
		QuestionCount: len(s.Questions),
		CreatedAt:     s.CreatedAt,
	}
}
