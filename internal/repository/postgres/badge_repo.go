package postgres

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// BadgeRepo реализует repository.BadgeRepository
type BadgeRepo struct {
	db *gorm.DB
}

// NewBadgeRepo создает новый репозиторий бейджей
func NewBadgeRepo(db *gorm.DB) *BadgeRepo {
	return &BadgeRepo{db: db}
}

// GetCatalog возвращает все определения бейджей в порядке каталога
func (r *BadgeRepo) GetCatalog() ([]entity.BadgeDefinition, error) {
	var badges []entity.BadgeDefinition
	err := r.db.Order("id ASC").Find(&badges).Error
	return badges, err
}

// GetEarnedBadgeIDs возвращает множество ID бейджей, уже полученных пользователем
func (r *BadgeRepo) GetEarnedBadgeIDs(userID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := r.db.Model(&entity.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, err
	}

	earned := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		earned[id] = struct{}{}
	}
	return earned, nil
}

// GetUserBadges возвращает бейджи пользователя вместе с определениями
func (r *BadgeRepo) GetUserBadges(userID uint) ([]entity.UserBadge, error) {
	var userBadges []entity.UserBadge
	err := r.db.Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&userBadges).Error
	return userBadges, err
}

// InsertAwardIfAbsent вставляет награду, если пары (userID, badgeID) еще нет.
// Конкурентная вставка перехватывается уникальным ограничением uniq_user_badge:
// и ON CONFLICT DO NOTHING, и код 23505 (unique_violation) трактуются как
// "награда уже существует", а не как ошибка.
func (r *BadgeRepo) InsertAwardIfAbsent(userID, badgeID uint, earnedAt time.Time) (bool, error) {
	award := entity.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: earnedAt,
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&award)

	if result.Error != nil {
		var pqErr *pq.Error
		if errors.As(result.Error, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return false, nil
		}
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// LevelRepo реализует repository.LevelRepository
type LevelRepo struct {
	db *gorm.DB
}

// NewLevelRepo создает новый репозиторий уровней
func NewLevelRepo(db *gorm.DB) *LevelRepo {
	return &LevelRepo{db: db}
}

// GetForPoints возвращает самый высокий уровень с порогом не выше points
func (r *LevelRepo) GetForPoints(points int64) (*entity.Level, error) {
	var level entity.Level
	err := r.db.Where("required_points <= ?", points).
		Order("required_points DESC").
		First(&level).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// List возвращает все уровни по возрастанию порога
func (r *LevelRepo) List() ([]entity.Level, error) {
	var levels []entity.Level
	err := r.db.Order("required_points ASC").Find(&levels).Error
	return levels, err
}
