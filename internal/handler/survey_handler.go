package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/handler/dto"
	"github.com/yourusername/survey-api/internal/service"
)

// SurveyHandler обрабатывает запросы каталога анкет и отправки ответов
type SurveyHandler struct {
	surveyService       *service.SurveyService
	gamificationService *service.GamificationService
}

// NewSurveyHandler создает новый обработчик анкет
func NewSurveyHandler(surveyService *service.SurveyService, gamificationService *service.GamificationService) *SurveyHandler {
	return &SurveyHandler{
		surveyService:       surveyService,
		gamificationService: gamificationService,
	}
}

// ListSurveys возвращает страницу видимых анкет
// GET /api/surveys?limit=20&offset=0
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	surveys, err := h.surveyService.ListVisible(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"surveys": surveys})
}

// GetSurvey возвращает анкету с вопросами
// GET /api/surveys/:id
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(uint)

	survey, err := h.surveyService.GetWithQuestions(surveyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, survey)
}

// CreateSurvey создает новую анкету
// POST /api/surveys
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req dto.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey, err := h.surveyService.CreateSurvey(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, survey)
}

// AddQuestions добавляет вопросы в анкету
// POST /api/surveys/:id/questions
func (h *SurveyHandler) AddQuestions(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(uint)

	var payloads []dto.QuestionPayload
	if err := c.ShouldBindJSON(&payloads); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey, err := h.surveyService.AddQuestions(surveyID, payloads)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, survey)
}

// SubmitSurvey принимает заполненную анкету и запускает движок геймификации
// POST /api/surveys/:id/submissions
func (h *SurveyHandler) SubmitSurvey(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(uint)
	userID := c.MustGet("userID").(uint)

	var req dto.SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]service.SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, service.SubmittedAnswer{
			QuestionID: a.QuestionID,
			Values:     a.Values,
		})
	}

	result, err := h.gamificationService.OnSurveySubmitted(c.Request.Context(), userID, surveyID, answers, req.TimeTakenSeconds)
	if err != nil {
		respondError(c, err)
		return
	}

	newBadges := make([]dto.BadgeResponse, 0, len(result.NewBadges))
	for _, b := range result.NewBadges {
		newBadges = append(newBadges, dto.BadgeResponse{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Icon:        b.Icon,
			Type:        b.Type,
			Condition:   b.Condition,
			Earned:      true,
		})
	}

	c.JSON(http.StatusOK, dto.SubmissionResponse{
		PointsEarned: result.PointsEarned,
		TotalPoints:  result.TotalPoints,
		Streak:       result.Streak,
		NewBadges:    newBadges,
	})
}
