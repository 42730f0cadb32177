package repository

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// BadgeRepository определяет методы для каталога бейджей и наград пользователей
type BadgeRepository interface {
	// GetCatalog возвращает все определения бейджей в порядке каталога (по id)
	GetCatalog() ([]entity.BadgeDefinition, error)
	GetEarnedBadgeIDs(userID uint) (map[uint]struct{}, error)
	GetUserBadges(userID uint) ([]entity.UserBadge, error)
	// InsertAwardIfAbsent вставляет награду, если пары (userID, badgeID)
	// еще нет. Возвращает inserted=false, если награда уже существует -
	// это штатный исход при конкурентной оценке, не ошибка.
	InsertAwardIfAbsent(userID, badgeID uint, earnedAt time.Time) (bool, error)
}

// LevelRepository определяет методы для уровней пользователей
type LevelRepository interface {
	// GetForPoints возвращает самый высокий уровень, порог которого
	// не превышает points. Если подходящего уровня нет - ErrNotFound.
	GetForPoints(points int64) (*entity.Level, error)
	List() ([]entity.Level, error)
}
