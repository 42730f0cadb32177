package dto

// AnswerPayload представляет ответ на один вопрос анкеты.
// Для вопросов с множественным выбором values содержит все выбранные варианты.
type AnswerPayload struct {
	QuestionID uint     `json:"question_id" binding:"required"`
	Values     []string `json:"values" binding:"required,min=1"`
}

// SubmitSurveyRequest представляет запрос на отправку заполненной анкеты
type SubmitSurveyRequest struct {
	Answers          []AnswerPayload `json:"answers" binding:"required,min=1,dive"`
	TimeTakenSeconds int             `json:"time_taken_seconds" binding:"min=0"`
}

// SubmissionResponse представляет итог обработки отправки
type SubmissionResponse struct {
	PointsEarned int             `json:"points_earned"`
	TotalPoints  int64           `json:"total_points"`
	Streak       int             `json:"streak"`
	NewBadges    []BadgeResponse `json:"new_badges"`
}
