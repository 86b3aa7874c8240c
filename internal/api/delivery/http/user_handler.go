package http

import (
	"net/http"

	"github.com/ATREE01/financemanager/internal/api/dto"
	"github.com/ATREE01/financemanager/internal/api/service"
	"github.com/ATREE01/financemanager/pkg/logger"

	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// RegisterRoutes registers the user routes. Registration is reachable
// without a user identity; the rest is scoped.
func (h *UserHandler) RegisterRoutes(public, scoped *echo.Group) {
	public.POST("/users", h.CreateUser)
	scoped.GET("/users/me", h.GetMe)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), userID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
