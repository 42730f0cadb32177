package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/handler/dto"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
	"github.com/yourusername/survey-api/internal/service/gamification"
)

type MockLevelRepoForStats struct {
	mock.Mock
}

func (m *MockLevelRepoForStats) GetForPoints(points int64) (*entity.Level, error) {
	args := m.Called(points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Level), args.Error(1)
}

func (m *MockLevelRepoForStats) List() ([]entity.Level, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Level), args.Error(1)
}

type statsFixture struct {
	userRepo       *MockUserRepoForSubmission
	badgeRepo      *MockBadgeRepoForSubmission
	levelRepo      *MockLevelRepoForStats
	completionRepo *MockCompletionRepoForSubmission
	responseRepo   *MockResponseRepoForSubmission
	cacheRepo      *MockCacheRepoForSubmission
	service        *StatsService
	now            time.Time
}

func newStatsFixture(t *testing.T) *statsFixture {
	t.Helper()

	cfg := gamification.DefaultConfig()
	cfg.Location = time.UTC

	f := &statsFixture{
		userRepo:       new(MockUserRepoForSubmission),
		badgeRepo:      new(MockBadgeRepoForSubmission),
		levelRepo:      new(MockLevelRepoForStats),
		completionRepo: new(MockCompletionRepoForSubmission),
		responseRepo:   new(MockResponseRepoForSubmission),
		cacheRepo:      new(MockCacheRepoForSubmission),
		now:            time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
	}
	f.service = NewStatsService(
		f.userRepo, f.badgeRepo, f.levelRepo, f.completionRepo, f.responseRepo, f.cacheRepo, cfg,
	)
	f.service.now = func() time.Time { return f.now }
	return f
}

func TestStatsService_LeaderboardTiedPointsShareRank(t *testing.T) {
	f := newStatsFixture(t)

	f.cacheRepo.On("GetJSON", mock.Anything, mock.Anything).Return(apperrors.ErrNotFound)
	f.userRepo.On("GetLeaderboard", 10, 0).Return([]entity.User{
		{ID: 1, Username: "alpha", Points: 300},
		{ID: 2, Username: "beta", Points: 200},
		{ID: 3, Username: "gamma", Points: 200},
		{ID: 4, Username: "delta", Points: 100},
	}, int64(4), nil)
	f.cacheRepo.On("SetJSON", mock.Anything, mock.Anything, leaderboardCacheTTL).Return(nil)

	result, err := f.service.GetLeaderboard(1, 10)

	require.NoError(t, err)
	require.Len(t, result.Entries, 4)
	ranks := []int{result.Entries[0].Rank, result.Entries[1].Rank, result.Entries[2].Rank, result.Entries[3].Rank}
	assert.Equal(t, []int{1, 2, 2, 4}, ranks)
	assert.Equal(t, int64(4), result.Total)
}

func TestStatsService_LeaderboardSecondPageRanks(t *testing.T) {
	f := newStatsFixture(t)

	f.cacheRepo.On("GetJSON", mock.Anything, mock.Anything).Return(apperrors.ErrNotFound)
	f.userRepo.On("GetLeaderboard", 2, 2).Return([]entity.User{
		{ID: 3, Username: "gamma", Points: 150},
		{ID: 4, Username: "delta", Points: 120},
	}, int64(4), nil)
	f.cacheRepo.On("SetJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.GetLeaderboard(2, 2)

	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, 3, result.Entries[0].Rank)
	assert.Equal(t, 4, result.Entries[1].Rank)
}

func TestStatsService_LeaderboardServedFromCache(t *testing.T) {
	f := newStatsFixture(t)

	cached := dto.PaginatedLeaderboardResponse{
		Entries: []dto.LeaderboardEntry{{Rank: 1, UserID: 9, Username: "cached", Points: 500}},
		Total:   1, Page: 1, PageSize: 10,
	}
	f.cacheRepo.On("GetJSON", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(1).(*dto.PaginatedLeaderboardResponse) = cached
		}).Return(nil)

	result, err := f.service.GetLeaderboard(1, 10)

	require.NoError(t, err)
	assert.Equal(t, "cached", result.Entries[0].Username)
	f.userRepo.AssertNotCalled(t, "GetLeaderboard", mock.Anything, mock.Anything)
}

func TestStatsService_LeaderboardPageClamping(t *testing.T) {
	f := newStatsFixture(t)

	f.cacheRepo.On("GetJSON", mock.Anything, mock.Anything).Return(apperrors.ErrNotFound)
	f.userRepo.On("GetLeaderboard", 100, 0).Return([]entity.User{}, int64(0), nil)
	f.cacheRepo.On("SetJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.GetLeaderboard(-5, 1000)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 100, result.PageSize)
}

func TestStatsService_GetUserStats(t *testing.T) {
	f := newStatsFixture(t)
	userID := uint(1)

	f.userRepo.On("GetByID", userID).Return(&entity.User{
		ID: userID, Username: "alpha", Points: 250, CompletedSurveys: 12,
	}, nil)
	f.levelRepo.On("GetForPoints", int64(250)).Return(&entity.Level{
		Name: "Исследователь", RequiredPoints: 200,
	}, nil)

	startOfDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	f.responseRepo.On("CountSince", userID, startOfDay).Return(int64(5), nil)
	f.responseRepo.On("CountSince", userID, f.now.AddDate(0, 0, -7)).Return(int64(21), nil)
	f.completionRepo.On("GetCompletionTimes", userID).Return([]time.Time{
		f.now.AddDate(0, 0, -1), f.now,
	}, nil)

	stats, err := f.service.GetUserStats(userID)

	require.NoError(t, err)
	assert.Equal(t, int64(250), stats.Points)
	require.NotNil(t, stats.Level)
	assert.Equal(t, "Исследователь", stats.Level.Name)
	assert.Equal(t, int64(5), stats.TodayResponses)
	assert.InDelta(t, 3.0, stats.WeeklyAverage, 1e-9)
	assert.Equal(t, 2, stats.Streak)
}

func TestStatsService_GetUserStatsNoLevelYet(t *testing.T) {
	// Очков меньше порога первого уровня: уровень отсутствует, не ошибка
	f := newStatsFixture(t)
	userID := uint(1)

	f.userRepo.On("GetByID", userID).Return(&entity.User{ID: userID, Points: 5}, nil)
	f.levelRepo.On("GetForPoints", int64(5)).Return(nil, apperrors.ErrNotFound)
	f.responseRepo.On("CountSince", userID, mock.Anything).Return(int64(0), nil)
	f.completionRepo.On("GetCompletionTimes", userID).Return([]time.Time{}, nil)

	stats, err := f.service.GetUserStats(userID)

	require.NoError(t, err)
	assert.Nil(t, stats.Level)
	assert.Equal(t, 0, stats.Streak)
}

func TestStatsService_GetStreakCalendar(t *testing.T) {
	f := newStatsFixture(t)
	userID := uint(1)

	f.completionRepo.On("GetCompletionTimes", userID).Return([]time.Time{
		time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	}, nil)

	result, err := f.service.GetStreak(userID)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
	assert.Equal(t, []string{"2025-03-09", "2025-03-10"}, result.ActiveDays)
}

func TestStatsService_GetBadgeProgress(t *testing.T) {
	f := newStatsFixture(t)
	userID := uint(1)
	earnedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	f.badgeRepo.On("GetCatalog").Return([]entity.BadgeDefinition{
		{ID: 1, Name: "Новичок", Type: entity.BadgeTypeSurveyCount, Condition: 3},
		{ID: 2, Name: "Ветеран", Type: entity.BadgeTypeSurveyCount, Condition: 50},
	}, nil)
	f.badgeRepo.On("GetUserBadges", userID).Return([]entity.UserBadge{
		{UserID: userID, BadgeID: 1, EarnedAt: earnedAt},
	}, nil)

	badges, err := f.service.GetBadgeProgress(userID)

	require.NoError(t, err)
	require.Len(t, badges, 2)
	assert.True(t, badges[0].Earned)
	require.NotNil(t, badges[0].EarnedAt)
	assert.Equal(t, earnedAt, *badges[0].EarnedAt)
	assert.False(t, badges[1].Earned)
	assert.Nil(t, badges[1].EarnedAt)
}
