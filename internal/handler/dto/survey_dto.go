package dto

import "time"

// CreateSurveyRequest представляет запрос на создание анкеты
type CreateSurveyRequest struct {
	Title       string            `json:"title" binding:"required,min=3,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	IsSpecial   bool              `json:"is_special"`
	IsVisible   bool              `json:"is_visible"`
	Questions   []QuestionPayload `json:"questions" binding:"omitempty,dive"`
}

// QuestionPayload представляет вопрос в запросе создания анкеты
type QuestionPayload struct {
	Text     string   `json:"text" binding:"required,min=1,max=500"`
	Type     string   `json:"type" binding:"required,oneof=text single_choice multi_choice slider"`
	Options  []string `json:"options"`
	ImageURL string   `json:"image_url"`
}

// SurveyResponse представляет анкету в списке
type SurveyResponse struct {
	ID            uint       `json:"id"`
	PublicID      string     `json:"public_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	IsSpecial     bool       `json:"is_special"`
	QuestionCount int        `json:"question_count"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// SurveyDetailResponse представляет анкету с вопросами
type SurveyDetailResponse struct {
	SurveyResponse
	Questions []QuestionResponse `json:"questions"`
}

// QuestionResponse представляет вопрос анкеты
type QuestionResponse struct {
	ID       uint     `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Position int      `json:"position"`
}
