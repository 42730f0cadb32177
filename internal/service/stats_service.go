package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	"github.com/yourusername/survey-api/internal/handler/dto"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
	redisRepo "github.com/yourusername/survey-api/internal/repository/redis"
	"github.com/yourusername/survey-api/internal/service/gamification"
)

// leaderboardCacheTTL - время жизни кешированной страницы таблицы лидеров.
// Короткое намеренно: инвалидация по каждой отправке не нужна, устаревание
// на полминуты для рейтинга приемлемо.
const leaderboardCacheTTL = 30 * time.Second

// StatsService предоставляет таблицу лидеров, статистику, уровни,
// серии и бейджи пользователей
type StatsService struct {
	userRepo       repository.UserRepository
	badgeRepo      repository.BadgeRepository
	levelRepo      repository.LevelRepository
	completionRepo repository.CompletionRepository
	responseRepo   repository.ResponseRepository
	cacheRepo      repository.CacheRepository

	config *gamification.Config
	streak *gamification.StreakCalculator

	now func() time.Time
}

// NewStatsService создает новый сервис статистики
func NewStatsService(
	userRepo repository.UserRepository,
	badgeRepo repository.BadgeRepository,
	levelRepo repository.LevelRepository,
	completionRepo repository.CompletionRepository,
	responseRepo repository.ResponseRepository,
	cacheRepo repository.CacheRepository,
	config *gamification.Config,
) *StatsService {
	if config == nil {
		config = gamification.DefaultConfig()
	}
	return &StatsService{
		userRepo:       userRepo,
		badgeRepo:      badgeRepo,
		levelRepo:      levelRepo,
		completionRepo: completionRepo,
		responseRepo:   responseRepo,
		cacheRepo:      cacheRepo,
		config:         config,
		streak:         gamification.NewStreakCalculator(config),
		now:            time.Now,
	}
}

// GetLeaderboard возвращает страницу таблицы лидеров, отсортированной по
// убыванию очков. Пользователи с равными очками делят одно место.
// Страница кешируется в Redis; отказ кеша не блокирует ответ.
func (s *StatsService) GetLeaderboard(page, pageSize int) (*dto.PaginatedLeaderboardResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	cacheKey := fmt.Sprintf("%s%d:%d", redisRepo.LeaderboardKeyPrefix, page, pageSize)
	var cached dto.PaginatedLeaderboardResponse
	if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[StatsService] WARNING: кеш таблицы лидеров недоступен: %v", err)
	}

	users, total, err := s.userRepo.GetLeaderboard(pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	response := &dto.PaginatedLeaderboardResponse{
		Entries:  buildLeaderboardEntries(users, offset),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}

	if err := s.cacheRepo.SetJSON(cacheKey, response, leaderboardCacheTTL); err != nil {
		log.Printf("[StatsService] WARNING: не удалось закешировать таблицу лидеров: %v", err)
	}

	return response, nil
}

// leaderboardExportLimit ограничивает размер выгрузки таблицы лидеров
const leaderboardExportLimit = 10000

// GetLeaderboardAll возвращает таблицу лидеров целиком для экспорта,
// без пагинации и кеша
func (s *StatsService) GetLeaderboardAll() ([]dto.LeaderboardEntry, error) {
	users, _, err := s.userRepo.GetLeaderboard(leaderboardExportLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for export: %w", err)
	}
	return buildLeaderboardEntries(users, 0), nil
}

// buildLeaderboardEntries присваивает места списку пользователей.
// Равные очки делят место; место растет только при смене очков.
// На границе страницы место отсчитывается от смещения.
func buildLeaderboardEntries(users []entity.User, offset int) []dto.LeaderboardEntry {
	entries := make([]dto.LeaderboardEntry, 0, len(users))
	rank := offset
	var prevPoints int64
	for i, u := range users {
		if i == 0 || u.Points != prevPoints {
			rank = offset + i + 1
		}
		prevPoints = u.Points
		entries = append(entries, dto.LeaderboardEntry{
			Rank:             rank,
			UserID:           u.ID,
			Username:         u.Username,
			ProfilePicture:   u.ProfilePicture,
			Points:           u.Points,
			CompletedSurveys: u.CompletedSurveys,
		})
	}
	return entries
}

// GetUserStats возвращает сводную статистику пользователя: очки, уровень,
// ответы за сегодня, средние ответы за неделю и текущую серию
func (s *StatsService) GetUserStats(userID uint) (*dto.UserStatsResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	loc := s.config.Location

	var levelInfo *dto.LevelInfo
	level, err := s.levelRepo.GetForPoints(user.Points)
	if err == nil {
		levelInfo = &dto.LevelInfo{
			Name:           level.Name,
			Description:    level.Description,
			RequiredPoints: level.RequiredPoints,
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve level: %w", err)
	}

	// Сегодня - от полуночи в часовом поясе приложения
	local := now.In(loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	todayResponses, err := s.responseRepo.CountSince(userID, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to count today responses: %w", err)
	}

	weekResponses, err := s.responseRepo.CountSince(userID, now.AddDate(0, 0, -s.config.WeeklyWindowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly responses: %w", err)
	}

	completionTimes, err := s.completionRepo.GetCompletionTimes(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion times: %w", err)
	}

	return &dto.UserStatsResponse{
		UserID:           user.ID,
		Username:         user.Username,
		Points:           user.Points,
		CompletedSurveys: user.CompletedSurveys,
		Level:            levelInfo,
		TodayResponses:   todayResponses,
		WeeklyAverage:    float64(weekResponses) / float64(s.config.WeeklyWindowDays),
		Streak:           s.streak.Compute(completionTimes, now),
	}, nil
}

// GetStreak возвращает текущую серию и календарь активных дней
// (дни с хотя бы одним завершением, формат YYYY-MM-DD в поясе приложения)
func (s *StatsService) GetStreak(userID uint) (*dto.StreakResponse, error) {
	completionTimes, err := s.completionRepo.GetCompletionTimes(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion times: %w", err)
	}

	now := s.now()
	loc := s.config.Location

	seen := make(map[string]struct{}, len(completionTimes))
	days := make([]string, 0, len(completionTimes))
	for _, t := range completionTimes {
		day := t.In(loc).Format("2006-01-02")
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Strings(days)

	return &dto.StreakResponse{
		Streak:     s.streak.Compute(completionTimes, now),
		ActiveDays: days,
	}, nil
}

// GetBadgeProgress возвращает весь каталог бейджей с отметками о полученных
func (s *StatsService) GetBadgeProgress(userID uint) ([]dto.BadgeResponse, error) {
	catalog, err := s.badgeRepo.GetCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load badge catalog: %w", err)
	}

	userBadges, err := s.badgeRepo.GetUserBadges(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user badges: %w", err)
	}
	earnedAt := make(map[uint]time.Time, len(userBadges))
	for _, ub := range userBadges {
		earnedAt[ub.BadgeID] = ub.EarnedAt
	}

	result := make([]dto.BadgeResponse, 0, len(catalog))
	for _, b := range catalog {
		item := badgeToDTO(b)
		if at, ok := earnedAt[b.ID]; ok {
			item.Earned = true
			earned := at
			item.EarnedAt = &earned
		}
		result = append(result, item)
	}
	return result, nil
}

// GetLevels возвращает все уровни по возрастанию порога
func (s *StatsService) GetLevels() ([]dto.LevelInfo, error) {
	levels, err := s.levelRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load levels: %w", err)
	}
	result := make([]dto.LevelInfo, 0, len(levels))
	for _, l := range levels {
		result = append(result, dto.LevelInfo{
			Name:           l.Name,
			Description:    l.Description,
			RequiredPoints: l.RequiredPoints,
		})
	}
	return result, nil
}

// badgeToDTO конвертирует определение бейджа в DTO
func badgeToDTO(b entity.BadgeDefinition) dto.BadgeResponse {
	return dto.BadgeResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Icon:        b.Icon,
		Type:        b.Type,
		Condition:   b.Condition,
	}
}
