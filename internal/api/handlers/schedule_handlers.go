package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agriwork-platform/workforce-service/pkg/api"
	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/middleware"

	"github.com/agriwork-platform/workforce-service/internal/application"
)

// ScheduleService is the application surface the schedule handlers depend on
type ScheduleService interface {
	CreateSchedule(ctx context.Context, cmd application.CreateScheduleCommand) (*application.ScheduleDTO, error)
	GetSchedule(ctx context.Context, query application.GetScheduleQuery) (*application.ScheduleDTO, error)
	ListSchedules(ctx context.Context, query application.ListSchedulesQuery) ([]application.ScheduleDTO, error)
	UpdateSchedule(ctx context.Context, cmd application.UpdateScheduleCommand) (*application.ScheduleDTO, error)
	DeleteSchedule(ctx context.Context, cmd application.DeleteScheduleCommand) error
	GetSchedulesByEmployee(ctx context.Context, query application.GetSchedulesByEmployeeQuery) ([]application.ScheduleDTO, error)
	IsEmployeeAssignedForDate(ctx context.Context, query application.CheckAssignmentQuery) (bool, error)
}

// ScheduleHandlers contains handlers for daily schedule operations
type ScheduleHandlers struct {
	service ScheduleService
	logger  *logging.Logger
}

// NewScheduleHandlers creates a new ScheduleHandlers
func NewScheduleHandlers(service ScheduleService, logger *logging.Logger) *ScheduleHandlers {
	return &ScheduleHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers schedule routes on the router
func (h *ScheduleHandlers) RegisterRoutes(router *gin.RouterGroup) {
	schedules := router.Group("/schedules")
	{
		schedules.POST("", h.CreateSchedule)
		schedules.GET("", h.ListSchedules)
		schedules.GET("/:scheduleId", h.GetSchedule)
		schedules.PUT("/:scheduleId", h.UpdateSchedule)
		schedules.DELETE("/:scheduleId", h.DeleteSchedule)
		schedules.GET("/employee/:employeeId", h.GetSchedulesByEmployee)
		schedules.GET("/check-assignment", h.CheckAssignment)
	}
}

// CreateSchedule handles schedule creation
func (h *ScheduleHandlers) CreateSchedule(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		Date  string                          `json:"date" binding:"required"`
		Items []application.ScheduleItemInput `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.CreateScheduleCommand{
		Date:  req.Date,
		Items: req.Items,
	}

	schedule, err := h.service.CreateSchedule(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// GetSchedule handles getting a schedule by ID
func (h *ScheduleHandlers) GetSchedule(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	query := application.GetScheduleQuery{ScheduleID: c.Param("scheduleId")}

	schedule, err := h.service.GetSchedule(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// ListSchedules handles listing schedules
func (h *ScheduleHandlers) ListSchedules(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	page := api.ParsePagination(c)

	query := application.ListSchedulesQuery{
		Date:   c.Query("date"),
		Limit:  int(page.GetLimit()),
		Offset: int(page.GetOffset()),
	}

	schedules, err := h.service.ListSchedules(c.Request.Context(), query)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// UpdateSchedule handles replacing a schedule's items wholesale
func (h *ScheduleHandlers) UpdateSchedule(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		Date  string                          `json:"date" binding:"required"`
		Items []application.ScheduleItemInput `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.UpdateScheduleCommand{
		ScheduleID: c.Param("scheduleId"),
		Date:       req.Date,
		Items:      req.Items,
	}

	schedule, err := h.service.UpdateSchedule(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule handles deleting a schedule and its work entries
func (h *ScheduleHandlers) DeleteSchedule(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	cmd := application.DeleteScheduleCommand{ScheduleID: c.Param("scheduleId")}

	if err := h.service.DeleteSchedule(c.Request.Context(), cmd); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSchedulesByEmployee handles listing the schedules assigning an employee
func (h *ScheduleHandlers) GetSchedulesByEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	query := application.GetSchedulesByEmployeeQuery{EmployeeID: c.Param("employeeId")}

	schedules, err := h.service.GetSchedulesByEmployee(c.Request.Context(), query)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// CheckAssignment reports whether an employee is already booked on a date.
// An itemId query parameter excludes that item from the conflict check, so
// an edit of an existing assignment does not collide with itself.
func (h *ScheduleHandlers) CheckAssignment(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	employeeID := c.Query("employeeId")
	date := c.Query("date")
	if employeeID == "" || date == "" {
		responder.RespondBadRequest("employeeId and date are required")
		return
	}

	query := application.CheckAssignmentQuery{
		EmployeeID:    employeeID,
		Date:          date,
		ExcludeItemID: c.Query("itemId"),
	}

	assigned, err := h.service.IsEmployeeAssignedForDate(c.Request.Context(), query)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employeeId": employeeID,
		"date":       date,
		"assigned":   assigned,
	})
}
