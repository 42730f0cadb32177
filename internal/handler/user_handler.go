package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type createUserRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Email          string `json:"email" binding:"omitempty,email"`
	ProfilePicture string `json:"profile_picture" binding:"omitempty,url"`
}

// CreateUser регистрирует нового пользователя
// POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Email, req.ProfilePicture)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser возвращает профиль пользователя
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.MustGet("requestedUserID").(uint)

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
