package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/middleware"

	"github.com/agriwork-platform/workforce-service/internal/application"
)

// UserService is the application surface the user handlers depend on
type UserService interface {
	UpsertUser(ctx context.Context, cmd application.UpsertUserCommand) (*application.UserDTO, error)
	GetUser(ctx context.Context, query application.GetUserQuery) (*application.UserDTO, error)
	ListUsers(ctx context.Context) ([]application.UserDTO, error)
}

// UserHandlers contains handlers for user role administration. All routes
// are admin-only.
type UserHandlers struct {
	service UserService
	logger  *logging.Logger
}

// NewUserHandlers creates a new UserHandlers
func NewUserHandlers(service UserService, logger *logging.Logger) *UserHandlers {
	return &UserHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers user routes on the router
func (h *UserHandlers) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", middleware.RequireAdmin())
	{
		users.PUT("", h.UpsertUser)
		users.GET("", h.ListUsers)
		users.GET("/:email", h.GetUser)
	}
}

// UpsertUser creates or updates a user's role binding
func (h *UserHandlers) UpsertUser(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		Email string `json:"email" binding:"required"`
		Role  string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.UpsertUserCommand{
		Email: req.Email,
		Role:  req.Role,
	}

	user, err := h.service.UpsertUser(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser retrieves a user's role binding
func (h *UserHandlers) GetUser(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	query := application.GetUserQuery{Email: c.Param("email")}

	user, err := h.service.GetUser(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers retrieves all user role bindings
func (h *UserHandlers) ListUsers(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, users)
}
