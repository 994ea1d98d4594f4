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

// WorkEntryService is the application surface the work entry handlers depend on
type WorkEntryService interface {
	RecordWorkEntry(ctx context.Context, cmd application.RecordWorkEntryCommand) (*application.WorkEntryDTO, error)
	GetEntriesForEmployee(ctx context.Context, query application.GetEmployeeEntriesQuery) ([]application.WorkEntryDTO, error)
	GetLockedEntries(ctx context.Context) ([]application.LockedEntryDTO, error)
	LockEntries(ctx context.Context, cmd application.LockEntriesCommand) (*application.LockResultDTO, error)
	UnlockEntries(ctx context.Context, cmd application.UnlockEntriesCommand) (*application.LockResultDTO, error)
}

// WorkEntryHandlers contains handlers for the work entry ledger
type WorkEntryHandlers struct {
	service WorkEntryService
	logger  *logging.Logger
}

// NewWorkEntryHandlers creates a new WorkEntryHandlers
func NewWorkEntryHandlers(service WorkEntryService, logger *logging.Logger) *WorkEntryHandlers {
	return &WorkEntryHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers work entry routes on the router. Unlocking is an
// administrative correction path and stays admin-only.
func (h *WorkEntryHandlers) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/work-entries")
	{
		entries.POST("", h.RecordWorkEntry)
		entries.GET("/schedule/:scheduleId/employee/:employeeId", h.GetEntriesForEmployee)
		entries.GET("/locked", h.GetLockedEntries)
		entries.POST("/lock", h.LockEntries)
		entries.POST("/unlock", middleware.RequireAdmin(), h.UnlockEntries)
	}
}

// RecordWorkEntry handles appending a work entry for an assignment
func (h *WorkEntryHandlers) RecordWorkEntry(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		ScheduleID  string                        `json:"scheduleId" binding:"required"`
		ItemID      string                        `json:"itemId" binding:"required"`
		EmployeeID  string                        `json:"employeeId" binding:"required"`
		Quantity    float64                       `json:"quantity"`
		Remarks     string                        `json:"remarks"`
		Payload     *application.TaskPayloadInput `json:"payload"`
		TotalSticks int                           `json:"totalSticks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.RecordWorkEntryCommand{
		ScheduleID:  req.ScheduleID,
		ItemID:      req.ItemID,
		EmployeeID:  req.EmployeeID,
		Quantity:    req.Quantity,
		Remarks:     req.Remarks,
		Payload:     req.Payload,
		TotalSticks: req.TotalSticks,
	}

	entry, err := h.service.RecordWorkEntry(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntriesForEmployee handles listing an employee's entries on a schedule
func (h *WorkEntryHandlers) GetEntriesForEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	query := application.GetEmployeeEntriesQuery{
		ScheduleID: c.Param("scheduleId"),
		EmployeeID: c.Param("employeeId"),
	}

	entries, err := h.service.GetEntriesForEmployee(c.Request.Context(), query)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetLockedEntries handles listing all locked assignments
func (h *WorkEntryHandlers) GetLockedEntries(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	locked, err := h.service.GetLockedEntries(c.Request.Context())
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, locked)
}

// LockEntries handles locking every entry of an assignment
func (h *WorkEntryHandlers) LockEntries(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		ScheduleID string `json:"scheduleId" binding:"required"`
		ItemID     string `json:"itemId" binding:"required"`
		EmployeeID string `json:"employeeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.LockEntriesCommand{
		ScheduleID: req.ScheduleID,
		ItemID:     req.ItemID,
		EmployeeID: req.EmployeeID,
	}

	result, err := h.service.LockEntries(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// UnlockEntries handles unlocking every entry of an assignment
func (h *WorkEntryHandlers) UnlockEntries(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		ScheduleID string `json:"scheduleId" binding:"required"`
		ItemID     string `json:"itemId" binding:"required"`
		EmployeeID string `json:"employeeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.UnlockEntriesCommand{
		ScheduleID: req.ScheduleID,
		ItemID:     req.ItemID,
		EmployeeID: req.EmployeeID,
	}

	result, err := h.service.UnlockEntries(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
