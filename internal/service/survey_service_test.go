package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/handler/dto"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

func newSurveyService(repo *MockSurveyRepoForSubmission) *SurveyService {
	s := NewSurveyService(repo)
	s.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSurveyService_CreateSurveyGeneratesPublicID(t *testing.T) {
	repo := new(MockSurveyRepoForSubmission)
	s := newSurveyService(repo)

	var created *entity.Survey
	repo.On("Create", mock.AnythingOfType("*entity.Survey")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*entity.Survey)
		}).Return(nil)

	survey, err := s.CreateSurvey(&dto.CreateSurveyRequest{
		Title:     "Утренние привычки",
		IsVisible: true,
		Questions: []dto.QuestionPayload{
			{Text: "Во сколько вы встаете?", Type: entity.QuestionTypeText},
			{Text: "Что пьете утром?", Type: entity.QuestionTypeMulti, Options: []string{"кофе", "чай", "воду"}},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, created)

	// public_id генерируется сервером и является валидным UUID
	_, parseErr := uuid.Parse(survey.PublicID)
	assert.NoError(t, parseErr)
	require.NotNil(t, survey.CreatedAt)

	// Позиции вопросов нумеруются с единицы
	require.Len(t, created.Questions, 2)
	assert.Equal(t, 1, created.Questions[0].Position)
	assert.Equal(t, 2, created.Questions[1].Position)
}

func TestSurveyService_CreateSurveyRejectsBadQuestions(t *testing.T) {
	repo := new(MockSurveyRepoForSubmission)
	s := newSurveyService(repo)

	tests := []struct {
		name     string
		question dto.QuestionPayload
	}{
		{"выбор без вариантов", dto.QuestionPayload{Text: "Выберите", Type: entity.QuestionTypeSingle}},
		{"один вариант", dto.QuestionPayload{Text: "Выберите", Type: entity.QuestionTypeMulti, Options: []string{"один"}}},
		{"неизвестный тип", dto.QuestionPayload{Text: "Что это?", Type: "telepathy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateSurvey(&dto.CreateSurveyRequest{
				Title:     "Анкета",
				Questions: []dto.QuestionPayload{tt.question},
			})
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSurveyService_AddQuestionsContinuesPositions(t *testing.T) {
	repo := new(MockSurveyRepoForSubmission)
	s := newSurveyService(repo)
	surveyID := uint(7)

	existing := &entity.Survey{
		ID: surveyID,
		Questions: []entity.Question{
			{ID: 1, Position: 1},
			{ID: 2, Position: 2},
		},
	}
	repo.On("GetWithQuestions", surveyID).Return(existing, nil)

	var added []entity.Question
	repo.On("AddQuestions", surveyID, mock.AnythingOfType("[]entity.Question")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).([]entity.Question)
		}).Return(nil)

	_, err := s.AddQuestions(surveyID, []dto.QuestionPayload{
		{Text: "Новый вопрос", Type: entity.QuestionTypeText},
	})

	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, 3, added[0].Position)
}

func TestSurveyService_GetWithQuestionsNotFound(t *testing.T) {
	repo := new(MockSurveyRepoForSubmission)
	s := newSurveyService(repo)

	repo.On("GetWithQuestions", uint(99)).Return(nil, apperrors.ErrNotFound)

	_, err := s.GetWithQuestions(99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSurveyService_ListVisibleClampsLimit(t *testing.T) {
	repo := new(MockSurveyRepoForSubmission)
	s := newSurveyService(repo)

	repo.On("ListVisible", 100, 0).Return([]entity.Survey{}, nil)

	_, err := s.ListVisible(1000, -5)

	require.NoError(t, err)
	repo.AssertCalled(t, "ListVisible", 100, 0)
}
