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

// PayrollService is the application surface the payroll handlers depend on
type PayrollService interface {
	GeneratePayroll(ctx context.Context, query application.GeneratePayrollQuery) (*application.PayrollReportDTO, error)
}

// PayrollHandlers contains handlers for payroll report generation
type PayrollHandlers struct {
	service PayrollService
	logger  *logging.Logger
}

// NewPayrollHandlers creates a new PayrollHandlers
func NewPayrollHandlers(service PayrollService, logger *logging.Logger) *PayrollHandlers {
	return &PayrollHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers payroll routes on the router
func (h *PayrollHandlers) RegisterRoutes(router *gin.RouterGroup) {
	payroll := router.Group("/payroll")
	{
		payroll.POST("/generate", h.GeneratePayroll)
	}
}

// GeneratePayroll prices recorded work over an inclusive date range using
// the rates supplied in the request.
func (h *PayrollHandlers) GeneratePayroll(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		StartDate string             `json:"startDate" binding:"required"`
		EndDate   string             `json:"endDate" binding:"required"`
		Rates     map[string]float64 `json:"rates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := application.GeneratePayrollQuery{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Rates:     req.Rates,
	}

	report, err := h.service.GeneratePayroll(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
