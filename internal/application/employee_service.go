package application

import (
	"context"
	"fmt"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// EmployeeRepository interface for employee persistence
type EmployeeRepository interface {
	Save(ctx context.Context, employee *domain.Employee) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

// EmployeeApplicationService handles employee directory use cases
type EmployeeApplicationService struct {
	repo         EmployeeRepository
	scheduleRepo ScheduleRepository
	entryRepo    WorkEntryRepository
	logger       *logging.Logger
}

// NewEmployeeApplicationService creates a new EmployeeApplicationService
func NewEmployeeApplicationService(
	repo EmployeeRepository,
	scheduleRepo ScheduleRepository,
	entryRepo WorkEntryRepository,
	logger *logging.Logger,
) *EmployeeApplicationService {
	return &EmployeeApplicationService{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		entryRepo:    entryRepo,
		logger:       logger,
	}
}

// CreateEmployee creates a new employee
func (s *EmployeeApplicationService) CreateEmployee(ctx context.Context, cmd CreateEmployeeCommand) (*EmployeeDTO, error) {
	existing, err := s.repo.FindByEmployeeID(ctx, cmd.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check employee", "employeeId", cmd.EmployeeID)
		return nil, fmt.Errorf("failed to check employee: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict("employee already exists")
	}

	employee, err := domain.NewEmployee(
		cmd.EmployeeID, cmd.Name, cmd.Surname, cmd.NationalID,
		cmd.Contact, cmd.Address, cmd.Gender,
		domain.NextOfKin{Name: cmd.NextOfKinName, Contact: cmd.NextOfKinContact},
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.repo.Save(ctx, employee); err != nil {
		s.logger.WithError(err).Error("Failed to save employee", "employeeId", employee.EmployeeID)
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "employee.created",
		EntityType: "employee",
		EntityID:   employee.EmployeeID,
		Action:     "created",
	})

	return ToEmployeeDTO(employee), nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeApplicationService) GetEmployee(ctx context.Context, query GetEmployeeQuery) (*EmployeeDTO, error) {
	employee, err := s.repo.FindByEmployeeID(ctx, query.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get employee", "employeeId", query.EmployeeID)
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if employee == nil {
		return nil, errors.ErrNotFound("employee")
	}

	return ToEmployeeDTO(employee), nil
}

// ListEmployees retrieves all employees
func (s *EmployeeApplicationService) ListEmployees(ctx context.Context, query ListEmployeesQuery) ([]EmployeeDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	employees, err := s.repo.FindAll(ctx, limit, query.Offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list employees")
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return ToEmployeeDTOs(employees), nil
}

// UpdateEmployee updates an employee's details
func (s *EmployeeApplicationService) UpdateEmployee(ctx context.Context, cmd UpdateEmployeeCommand) (*EmployeeDTO, error) {
	employee, err := s.repo.FindByEmployeeID(ctx, cmd.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get employee", "employeeId", cmd.EmployeeID)
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if employee == nil {
		return nil, errors.ErrNotFound("employee")
	}

	err = employee.Update(
		cmd.Name, cmd.Surname, cmd.NationalID,
		cmd.Contact, cmd.Address, cmd.Gender,
		domain.NextOfKin{Name: cmd.NextOfKinName, Contact: cmd.NextOfKinContact},
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.repo.Save(ctx, employee); err != nil {
		s.logger.WithError(err).Error("Failed to save employee", "employeeId", cmd.EmployeeID)
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	return ToEmployeeDTO(employee), nil
}

// DeleteEmployee deletes an employee. Deletion is refused while schedules or
// work entries still reference the employee.
func (s *EmployeeApplicationService) DeleteEmployee(ctx context.Context, cmd DeleteEmployeeCommand) error {
	employee, err := s.repo.FindByEmployeeID(ctx, cmd.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get employee", "employeeId", cmd.EmployeeID)
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if employee == nil {
		return errors.ErrNotFound("employee")
	}

	schedules, err := s.scheduleRepo.FindByEmployeeID(ctx, cmd.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check schedule references", "employeeId", cmd.EmployeeID)
		return fmt.Errorf("failed to check schedule references: %w", err)
	}
	if len(schedules) > 0 {
		return errors.ErrConflict(domain.ErrEmployeeReferenced.Error())
	}

	entryCount, err := s.entryRepo.CountByEmployeeID(ctx, cmd.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check entry references", "employeeId", cmd.EmployeeID)
		return fmt.Errorf("failed to check entry references: %w", err)
	}
	if entryCount > 0 {
		return errors.ErrConflict(domain.ErrEmployeeReferenced.Error())
	}

	if err := s.repo.Delete(ctx, cmd.EmployeeID); err != nil {
		s.logger.WithError(err).Error("Failed to delete employee", "employeeId", cmd.EmployeeID)
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "employee.deleted",
		EntityType: "employee",
		EntityID:   cmd.EmployeeID,
		Action:     "deleted",
	})

	return nil
}
