package repository

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	// ApplySubmission атомарно начисляет очки, увеличивает счетчик
	// завершенных анкет и обновляет last_activity. Реализация обязана
	// выполнять обновление одним транзакционным выражением -
	// наивное чтение-потом-запись теряет обновления при параллельной
	// отправке с двух устройств.
	ApplySubmission(userID uint, pointsDelta int64, completedAt time.Time) (*entity.User, error)
	List(limit, offset int) ([]entity.User, error)
	// GetLeaderboard возвращает пользователей, отсортированных по очкам,
	// с пагинацией и общим количеством
	GetLeaderboard(limit, offset int) ([]entity.User, int64, error)
}
