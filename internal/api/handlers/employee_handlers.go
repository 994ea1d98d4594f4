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

// EmployeeService is the application surface the employee handlers depend on
type EmployeeService interface {
	CreateEmployee(ctx context.Context, cmd application.CreateEmployeeCommand) (*application.EmployeeDTO, error)
	GetEmployee(ctx context.Context, query application.GetEmployeeQuery) (*application.EmployeeDTO, error)
	ListEmployees(ctx context.Context, query application.ListEmployeesQuery) ([]application.EmployeeDTO, error)
	UpdateEmployee(ctx context.Context, cmd application.UpdateEmployeeCommand) (*application.EmployeeDTO, error)
	DeleteEmployee(ctx context.Context, cmd application.DeleteEmployeeCommand) error
}

// EmployeeHandlers contains handlers for employee directory operations
type EmployeeHandlers struct {
	service EmployeeService
	logger  *logging.Logger
}

// NewEmployeeHandlers creates a new EmployeeHandlers
func NewEmployeeHandlers(service EmployeeService, logger *logging.Logger) *EmployeeHandlers {
	return &EmployeeHandlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers employee routes on the router
func (h *EmployeeHandlers) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/employees")
	{
		employees.POST("", h.CreateEmployee)
		employees.GET("", h.ListEmployees)
		employees.GET("/:employeeId", h.GetEmployee)
		employees.PUT("/:employeeId", h.UpdateEmployee)
		employees.DELETE("/:employeeId", h.DeleteEmployee)
	}
}

// CreateEmployee handles employee creation
func (h *EmployeeHandlers) CreateEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		EmployeeID       string `json:"employeeId" binding:"required"`
		Name             string `json:"name" binding:"required"`
		Surname          string `json:"surname" binding:"required"`
		NationalID       string `json:"nationalId"`
		Contact          string `json:"contact"`
		Address          string `json:"address"`
		Gender           string `json:"gender"`
		NextOfKinName    string `json:"nextOfKinName"`
		NextOfKinContact string `json:"nextOfKinContact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.CreateEmployeeCommand{
		EmployeeID:       req.EmployeeID,
		Name:             req.Name,
		Surname:          req.Surname,
		NationalID:       req.NationalID,
		Contact:          req.Contact,
		Address:          req.Address,
		Gender:           req.Gender,
		NextOfKinName:    req.NextOfKinName,
		NextOfKinContact: req.NextOfKinContact,
	}

	employee, err := h.service.CreateEmployee(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployee handles getting an employee by ID
func (h *EmployeeHandlers) GetEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	query := application.GetEmployeeQuery{EmployeeID: c.Param("employeeId")}

	employee, err := h.service.GetEmployee(c.Request.Context(), query)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, employee)
}

// ListEmployees handles listing the employee directory
func (h *EmployeeHandlers) ListEmployees(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	page := api.ParsePagination(c)

	query := application.ListEmployeesQuery{
		Limit:  int(page.GetLimit()),
		Offset: int(page.GetOffset()),
	}

	employees, err := h.service.ListEmployees(c.Request.Context(), query)
	if err != nil {
		responder.RespondInternalError(err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// UpdateEmployee handles updating an employee's details
func (h *EmployeeHandlers) UpdateEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var req struct {
		Name             string `json:"name" binding:"required"`
		Surname          string `json:"surname" binding:"required"`
		NationalID       string `json:"nationalId"`
		Contact          string `json:"contact"`
		Address          string `json:"address"`
		Gender           string `json:"gender"`
		NextOfKinName    string `json:"nextOfKinName"`
		NextOfKinContact string `json:"nextOfKinContact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := application.UpdateEmployeeCommand{
		EmployeeID:       c.Param("employeeId"),
		Name:             req.Name,
		Surname:          req.Surname,
		NationalID:       req.NationalID,
		Contact:          req.Contact,
		Address:          req.Address,
		Gender:           req.Gender,
		NextOfKinName:    req.NextOfKinName,
		NextOfKinContact: req.NextOfKinContact,
	}

	employee, err := h.service.UpdateEmployee(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles deleting an employee
func (h *EmployeeHandlers) DeleteEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	cmd := application.DeleteEmployeeCommand{EmployeeID: c.Param("employeeId")}

	if err := h.service.DeleteEmployee(c.Request.Context(), cmd); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
