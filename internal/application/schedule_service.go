package application

import (
	"context"
	"fmt"
	"time"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/metrics"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// ScheduleRepository interface for schedule persistence
type ScheduleRepository interface {
	Save(ctx context.Context, schedule *domain.Schedule) error
	FindByScheduleID(ctx context.Context, scheduleID string) (*domain.Schedule, error)
	FindByDate(ctx context.Context, date string) ([]*domain.Schedule, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Schedule, error)
	FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.Schedule, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Schedule, error)
	Delete(ctx context.Context, schedule *domain.Schedule) error
}

// ScheduleApplicationService handles schedule use cases
type ScheduleApplicationService struct {
	repo      ScheduleRepository
	entryRepo WorkEntryRepository
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// NewScheduleApplicationService creates a new ScheduleApplicationService
func NewScheduleApplicationService(
	repo ScheduleRepository,
	entryRepo WorkEntryRepository,
	logger *logging.Logger,
	m *metrics.Metrics,
) *ScheduleApplicationService {
	return &ScheduleApplicationService{
		repo:      repo,
		entryRepo: entryRepo,
		logger:    logger,
		metrics:   m,
	}
}

// CreateSchedule creates a schedule for one date after checking that no
// employee on the submission is already booked elsewhere on that date.
func (s *ScheduleApplicationService) CreateSchedule(ctx context.Context, cmd CreateScheduleCommand) (*ScheduleDTO, error) {
	items := toScheduleItems(cmd.Items)

	if err := s.checkDoubleBooking(ctx, cmd.Date, items, ""); err != nil {
		return nil, err
	}

	schedule, err := domain.NewSchedule(cmd.Date, items)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.repo.Save(ctx, schedule); err != nil {
		s.logger.WithError(err).Error("Failed to save schedule", "scheduleId", schedule.ScheduleID)
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordScheduleCreated()
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "schedule.created",
		EntityType: "schedule",
		EntityID:   schedule.ScheduleID,
		Action:     "created",
		RelatedIDs: map[string]string{
			"date": cmd.Date,
		},
	})

	return ToScheduleDTO(schedule), nil
}

// UpdateSchedule replaces a schedule's item list wholesale. Employees already
// on the schedule being edited are not counted as conflicts against it.
func (s *ScheduleApplicationService) UpdateSchedule(ctx context.Context, cmd UpdateScheduleCommand) (*ScheduleDTO, error) {
	schedule, err := s.repo.FindByScheduleID(ctx, cmd.ScheduleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get schedule", "scheduleId", cmd.ScheduleID)
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule == nil {
		return nil, errors.ErrNotFound("schedule")
	}

	items := toScheduleItems(cmd.Items)

	if err := s.checkDoubleBooking(ctx, cmd.Date, items, cmd.ScheduleID); err != nil {
		return nil, err
	}

	if err := schedule.ReplaceItems(cmd.Date, items); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.repo.Save(ctx, schedule); err != nil {
		s.logger.WithError(err).Error("Failed to save schedule", "scheduleId", cmd.ScheduleID)
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	return ToScheduleDTO(schedule), nil
}

// checkDoubleBooking rejects items assigning an employee who is already on
// another schedule's item for the same date. When editing, the schedule under
// edit is excluded from the conflict set since its items are being replaced.
func (s *ScheduleApplicationService) checkDoubleBooking(ctx context.Context, date string, items []domain.ScheduleItem, excludeScheduleID string) error {
	sameDay, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load schedules for date", "date", date)
		return fmt.Errorf("failed to load schedules for date: %w", err)
	}

	others := make([]*domain.Schedule, 0, len(sameDay))
	for _, existing := range sameDay {
		if existing.ScheduleID != excludeScheduleID {
			others = append(others, existing)
		}
	}

	for _, item := range items {
		for _, employeeID := range item.EmployeeIDs {
			if domain.IsEmployeeAssignedForDate(employeeID, date, others, "") {
				return errors.ErrConflict(fmt.Sprintf("employee %s is already assigned on %s", employeeID, date))
			}
		}
	}

	return nil
}

// GetSchedule retrieves a schedule by ID
func (s *ScheduleApplicationService) GetSchedule(ctx context.Context, query GetScheduleQuery) (*ScheduleDTO, error) {
	schedule, err := s.repo.FindByScheduleID(ctx, query.ScheduleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get schedule", "scheduleId", query.ScheduleID)
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule == nil {
		return nil, errors.ErrNotFound("schedule")
	}

	return ToScheduleDTO(schedule), nil
}

// ListSchedules retrieves all schedules
func (s *ScheduleApplicationService) ListSchedules(ctx context.Context, query ListSchedulesQuery) ([]ScheduleDTO, error) {
	if query.Date != "" {
		schedules, err := s.repo.FindByDate(ctx, query.Date)
		if err != nil {
			s.logger.WithError(err).Error("Failed to list schedules for date", "date", query.Date)
			return nil, fmt.Errorf("failed to list schedules for date: %w", err)
		}
		return ToScheduleDTOs(schedules), nil
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	schedules, err := s.repo.FindAll(ctx, limit, query.Offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list schedules")
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	return ToScheduleDTOs(schedules), nil
}

// GetSchedulesByEmployee retrieves all schedules assigning an employee
func (s *ScheduleApplicationService) GetSchedulesByEmployee(ctx context.Context, query GetSchedulesByEmployeeQuery) ([]ScheduleDTO, error) {
	schedules, err := s.repo.FindByEmployeeID(ctx, query.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get schedules by employee", "employeeId", query.EmployeeID)
		return nil, fmt.Errorf("failed to get schedules by employee: %w", err)
	}

	return ToScheduleDTOs(schedules), nil
}

// IsEmployeeAssignedForDate reports whether an employee is already booked on
// a date, optionally excluding the item under edit.
func (s *ScheduleApplicationService) IsEmployeeAssignedForDate(ctx context.Context, query CheckAssignmentQuery) (bool, error) {
	schedules, err := s.repo.FindByDate(ctx, query.Date)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load schedules for date", "date", query.Date)
		return false, fmt.Errorf("failed to load schedules for date: %w", err)
	}

	return domain.IsEmployeeAssignedForDate(query.EmployeeID, query.Date, schedules, query.ExcludeItemID), nil
}

// DeleteSchedule removes a schedule and its work entries. Entries go first;
// if their deletion fails the schedule stays put. The two deletes are
// sequenced, not transactional, so a schedule delete failing after the
// entries are gone leaves no orphans worth keeping.
func (s *ScheduleApplicationService) DeleteSchedule(ctx context.Context, cmd DeleteScheduleCommand) error {
	schedule, err := s.repo.FindByScheduleID(ctx, cmd.ScheduleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get schedule", "scheduleId", cmd.ScheduleID)
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule == nil {
		return errors.ErrNotFound("schedule")
	}

	entriesRemoved, err := s.entryRepo.DeleteByScheduleID(ctx, cmd.ScheduleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to delete work entries", "scheduleId", cmd.ScheduleID)
		return fmt.Errorf("failed to delete work entries: %w", err)
	}

	schedule.AddDomainEvent(&domain.ScheduleDeletedEvent{
		ScheduleID:     schedule.ScheduleID,
		Date:           schedule.Date,
		EntriesRemoved: entriesRemoved,
		DeletedAt:      time.Now(),
	})

	if err := s.repo.Delete(ctx, schedule); err != nil {
		s.logger.WithError(err).Error("Failed to delete schedule", "scheduleId", cmd.ScheduleID)
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "schedule.deleted",
		EntityType: "schedule",
		EntityID:   cmd.ScheduleID,
		Action:     "deleted",
		RelatedIDs: map[string]string{
			"entriesRemoved": fmt.Sprintf("%d", entriesRemoved),
		},
	})

	return nil
}
