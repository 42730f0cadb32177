package dto

import "time"

// LeaderboardEntry представляет одну строку таблицы лидеров
type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           uint   `json:"user_id"`
	Username         string `json:"username"`
	ProfilePicture   string `json:"profile_picture,omitempty"`
	Points           int64  `json:"points"`
	CompletedSurveys int64  `json:"completed_surveys"`
}

// PaginatedLeaderboardResponse представляет страницу таблицы лидеров
type PaginatedLeaderboardResponse struct {
	Entries  []LeaderboardEntry `json:"entries"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// LevelInfo представляет уровень пользователя
type LevelInfo struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	RequiredPoints int64  `json:"required_points"`
}

// UserStatsResponse представляет сводную статистику пользователя
type UserStatsResponse struct {
	UserID           uint       `json:"user_id"`
	Username         string     `json:"username"`
	Points           int64      `json:"points"`
	CompletedSurveys int64      `json:"completed_surveys"`
	Level            *LevelInfo `json:"level,omitempty"`
	TodayResponses   int64      `json:"today_responses"`
	WeeklyAverage    float64    `json:"weekly_average"`
	Streak           int        `json:"streak"`
}

// StreakResponse представляет серию пользователя и календарь активных дней
type StreakResponse struct {
	Streak     int      `json:"streak"`
	ActiveDays []string `json:"active_days"`
}

// BadgeResponse представляет бейдж; EarnedAt заполнен только для полученных
type BadgeResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Type        string     `json:"type"`
	Condition   float64    `json:"condition"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}
