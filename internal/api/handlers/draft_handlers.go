package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/middleware"

	"github.com/agriwork-platform/workforce-service/internal/application"
)

// DraftService is the application surface the draft handlers depend on
type DraftService interface {
	SaveDraft(ctx context.Context, cmd application.SaveDraftCommand) (*application.DraftDTO, error)
	GetDraft(ctx context.Context, query application.GetDraftQuery) (*application.DraftDTO, error)
	ClearDraft(ctx context.Context, cmd application.ClearDraftCommand) error
}

// DraftHandlers contains handlers for work entry form drafts
type DraftHandlers struct {
	service DraftService
	logger  *logging.Logger
}

// NewDraftHandlers creates a new DraftHandlers
func NewDraftHandlers(service DraftService, logger *logging.Logger) *DraftHandlers {
	return &DraftHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers draft routes on the router
func (h *DraftHandlers) RegisterRoutes(router *gin.RouterGroup) {
	drafts := router.Group("/drafts")
	{
		drafts.PUT("", h.SaveDraft)
		drafts.GET("", h.GetDraft)
		drafts.DELETE("", h.ClearDraft)
	}
}

// SaveDraft stores or refreshes an in-progress form snapshot
func (h *DraftHandlers) SaveDraft(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		Task       string          `json:"task" binding:"required"`
		ScheduleID string          `json:"scheduleId" binding:"required"`
		ItemID     string          `json:"itemId" binding:"required"`
		EmployeeID string          `json:"employeeId" binding:"required"`
		Payload    json.RawMessage `json:"payload"`
		Remarks    string          `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.SaveDraftCommand{
		Task:       req.Task,
		ScheduleID: req.ScheduleID,
		ItemID:     req.ItemID,
		EmployeeID: req.EmployeeID,
		Payload:    req.Payload,
		Remarks:    req.Remarks,
	}

	draft, err := h.service.SaveDraft(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, draft)
}

// GetDraft retrieves a stored draft by its structured key
func (h *DraftHandlers) GetDraft(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	query := application.GetDraftQuery{
		Task:       c.Query("task"),
		ScheduleID: c.Query("scheduleId"),
		ItemID:     c.Query("itemId"),
		EmployeeID: c.Query("employeeId"),
	}

	draft, err := h.service.GetDraft(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, draft)
}

// ClearDraft removes a stored draft
func (h *DraftHandlers) ClearDraft(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	cmd := application.ClearDraftCommand{
		Task:       c.Query("task"),
		ScheduleID: c.Query("scheduleId"),
		ItemID:     c.Query("itemId"),
		EmployeeID: c.Query("employeeId"),
	}

	if err := h.service.ClearDraft(c.Request.Context(), cmd); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
