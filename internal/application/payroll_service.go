package application

import (
	"context"
	"fmt"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/metrics"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// PayrollApplicationService derives payroll reports from recorded work.
// Reports are recomputed on demand and never persisted.
type PayrollApplicationService struct {
	scheduleRepo ScheduleRepository
	entryRepo    WorkEntryRepository
	employeeRepo EmployeeRepository
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewPayrollApplicationService creates a new PayrollApplicationService
func NewPayrollApplicationService(
	scheduleRepo ScheduleRepository,
	entryRepo WorkEntryRepository,
	employeeRepo EmployeeRepository,
	logger *logging.Logger,
	m *metrics.Metrics,
) *PayrollApplicationService {
	return &PayrollApplicationService{
		scheduleRepo: scheduleRepo,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
		metrics:      m,
	}
}

// GeneratePayroll prices work entries recorded between StartDate and EndDate
// inclusive. Rates come from the caller; tasks without a rate price at zero.
func (s *PayrollApplicationService) GeneratePayroll(ctx context.Context, query GeneratePayrollQuery) (*PayrollReportDTO, error) {
	if query.StartDate == "" || query.EndDate == "" {
		return nil, errors.ErrValidation("startDate and endDate are required")
	}
	if query.StartDate > query.EndDate {
		return nil, errors.ErrValidation("startDate must not be after endDate")
	}

	schedules, err := s.scheduleRepo.FindByDateRange(ctx, query.StartDate, query.EndDate)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load schedules for payroll", "startDate", query.StartDate, "endDate", query.EndDate)
		return nil, fmt.Errorf("failed to load schedules for payroll: %w", err)
	}

	scheduleIDs := make([]string, len(schedules))
	for i, schedule := range schedules {
		scheduleIDs[i] = schedule.ScheduleID
	}

	entries, err := s.entryRepo.FindByScheduleIDs(ctx, scheduleIDs)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load entries for payroll")
		return nil, fmt.Errorf("failed to load entries for payroll: %w", err)
	}

	employees, err := s.employeeRepo.FindAll(ctx, 0, 0)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load employees for payroll")
		return nil, fmt.Errorf("failed to load employees for payroll: %w", err)
	}

	rates := make(domain.RateTable, len(query.Rates))
	for task, rate := range query.Rates {
		rates[domain.TaskName(task)] = rate
	}

	payrolls := domain.BuildPayroll(query.StartDate, query.EndDate, schedules, entries, employees, rates)

	if s.metrics != nil {
		s.metrics.RecordPayrollReport()
	}

	s.logger.Info("Generated payroll report",
		"startDate", query.StartDate,
		"endDate", query.EndDate,
		"employees", len(payrolls),
	)

	return ToPayrollReportDTO(query.StartDate, query.EndDate, payrolls), nil
}
