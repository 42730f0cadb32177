package service

import (
	"fmt"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// UserService предоставляет методы для работы с профилями пользователей
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser регистрирует нового пользователя
func (s *UserService) CreateUser(username, email, profilePicture string) (*entity.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}

	// Проверка уникальности имени до вставки дает понятную ошибку;
	// гонку двух регистраций ловит уникальный индекс
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrConflict, username)
	}

	user := &entity.User{
		Username:       username,
		Email:          email,
		ProfilePicture: profilePicture,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser возвращает пользователя по идентификатору
func (s *UserService) GetUser(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}
