package application

import (
	"context"
	"fmt"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"
	"github.com/agriwork-platform/workforce-service/pkg/metrics"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// WorkEntryRepository interface for work entry persistence
type WorkEntryRepository interface {
	Save(ctx context.Context, entry *domain.WorkEntry) error
	FindByAssignment(ctx context.Context, scheduleID, itemID, employeeID string) ([]*domain.WorkEntry, error)
	FindByScheduleAndEmployee(ctx context.Context, scheduleID, employeeID string) ([]*domain.WorkEntry, error)
	FindByScheduleIDs(ctx context.Context, scheduleIDs []string) ([]*domain.WorkEntry, error)
	FindLocked(ctx context.Context) ([]*domain.WorkEntry, error)
	SetLocked(ctx context.Context, scheduleID, itemID, employeeID string, locked bool) (int64, error)
	DeleteByScheduleID(ctx context.Context, scheduleID string) (int64, error)
	CountByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}

// DraftStore clears saved form progress once an entry is submitted
type DraftStore interface {
	Delete(ctx context.Context, key domain.DraftKey) error
}

// WorkEntryApplicationService handles work entry ledger use cases
type WorkEntryApplicationService struct {
	repo         WorkEntryRepository
	scheduleRepo ScheduleRepository
	drafts       DraftStore
	logger       *logging.Logger
	metrics      *metrics.Metrics
}

// NewWorkEntryApplicationService creates a new WorkEntryApplicationService
func NewWorkEntryApplicationService(
	repo WorkEntryRepository,
	scheduleRepo ScheduleRepository,
	drafts DraftStore,
	logger *logging.Logger,
	m *metrics.Metrics,
) *WorkEntryApplicationService {
	return &WorkEntryApplicationService{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		drafts:       drafts,
		logger:       logger,
		metrics:      m,
	}
}

// RecordWorkEntry appends a work entry for an assignment. The entry is
// rejected while the assignment's existing entries are locked.
func (s *WorkEntryApplicationService) RecordWorkEntry(ctx context.Context, cmd RecordWorkEntryCommand) (*WorkEntryDTO, error) {
	schedule, err := s.scheduleRepo.FindByScheduleID(ctx, cmd.ScheduleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get schedule", "scheduleId", cmd.ScheduleID)
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if schedule == nil {
		return nil, errors.ErrNotFound("schedule")
	}

	item := schedule.FindItem(cmd.ItemID)
	if item == nil {
		return nil, errors.ErrNotFound("schedule item")
	}

	existing, err := s.repo.FindByAssignment(ctx, cmd.ScheduleID, cmd.ItemID, cmd.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load entries for assignment", "scheduleId", cmd.ScheduleID)
		return nil, fmt.Errorf("failed to load entries for assignment: %w", err)
	}
	if domain.IsEntryLocked(cmd.ScheduleID, cmd.ItemID, cmd.EmployeeID, existing) {
		return nil, errors.ErrEntryLocked(domain.ErrEntryTripleLocked.Error())
	}

	entry, err := domain.NewWorkEntry(
		cmd.ScheduleID, cmd.ItemID, cmd.EmployeeID,
		cmd.Quantity, cmd.Remarks,
		toTaskPayload(cmd.Payload), cmd.TotalSticks,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		s.logger.WithError(err).Error("Failed to save work entry", "entryId", entry.EntryID)
		return nil, fmt.Errorf("failed to save work entry: %w", err)
	}

	// drop any saved form progress now that the entry is submitted
	if s.drafts != nil {
		key := domain.DraftKey{
			Task:       item.Task,
			ScheduleID: cmd.ScheduleID,
			ItemID:     cmd.ItemID,
			EmployeeID: cmd.EmployeeID,
		}
		if err := s.drafts.Delete(ctx, key); err != nil {
			s.logger.WithError(err).Warn("Failed to clear draft after submit", "scheduleId", cmd.ScheduleID, "itemId", cmd.ItemID)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordWorkEntryRecorded(string(item.Task))
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "workentry.recorded",
		EntityType: "workentry",
		EntityID:   entry.EntryID,
		Action:     "recorded",
		RelatedIDs: map[string]string{
			"scheduleId": cmd.ScheduleID,
			"itemId":     cmd.ItemID,
			"employeeId": cmd.EmployeeID,
		},
	})

	return ToWorkEntryDTO(entry), nil
}

// LockEntries locks every entry of an assignment. Locking requires at least
// one existing entry and reports a not-found error otherwise. Re-locking an
// already locked assignment is a no-op with the same outcome.
func (s *WorkEntryApplicationService) LockEntries(ctx context.Context, cmd LockEntriesCommand) (*LockResultDTO, error) {
	matched, err := s.repo.SetLocked(ctx, cmd.ScheduleID, cmd.ItemID, cmd.EmployeeID, true)
	if err != nil {
		s.logger.WithError(err).Error("Failed to lock entries", "scheduleId", cmd.ScheduleID, "itemId", cmd.ItemID)
		return nil, fmt.Errorf("failed to lock entries: %w", err)
	}

	if matched == 0 {
		return nil, errors.ErrNotFound("work entries for assignment")
	}

	if s.metrics != nil {
		s.metrics.RecordEntriesLocked()
	}

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "workentry.entries.locked",
		EntityType: "workentry",
		EntityID:   cmd.ScheduleID + "/" + cmd.ItemID + "/" + cmd.EmployeeID,
		Action:     "locked",
	})

	return &LockResultDTO{
		ScheduleID: cmd.ScheduleID,
		ItemID:     cmd.ItemID,
		EmployeeID: cmd.EmployeeID,
		Locked:     true,
		RowCount:   matched,
	}, nil
}

// UnlockEntries unlocks every entry of an assignment. The caller enforces
// the admin role. Returns Locked=false with a zero row count when nothing
// matched rather than an error.
func (s *WorkEntryApplicationService) UnlockEntries(ctx context.Context, cmd UnlockEntriesCommand) (*LockResultDTO, error) {
	matched, err := s.repo.SetLocked(ctx, cmd.ScheduleID, cmd.ItemID, cmd.EmployeeID, false)
	if err != nil {
		s.logger.WithError(err).Error("Failed to unlock entries", "scheduleId", cmd.ScheduleID, "itemId", cmd.ItemID)
		return nil, fmt.Errorf("failed to unlock entries: %w", err)
	}

	if matched > 0 && s.metrics != nil {
		s.metrics.RecordEntriesUnlocked()
	}

	if matched > 0 {
		s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
			EventType:  "workentry.entries.unlocked",
			EntityType: "workentry",
			EntityID:   cmd.ScheduleID + "/" + cmd.ItemID + "/" + cmd.EmployeeID,
			Action:     "unlocked",
		})
	}

	return &LockResultDTO{
		ScheduleID: cmd.ScheduleID,
		ItemID:     cmd.ItemID,
		EmployeeID: cmd.EmployeeID,
		Locked:     false,
		RowCount:   matched,
	}, nil
}

// GetEntriesForEmployee retrieves an employee's entries on one schedule
func (s *WorkEntryApplicationService) GetEntriesForEmployee(ctx context.Context, query GetEmployeeEntriesQuery) ([]WorkEntryDTO, error) {
	entries, err := s.repo.FindByScheduleAndEmployee(ctx, query.ScheduleID, query.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get entries", "scheduleId", query.ScheduleID, "employeeId", query.EmployeeID)
		return nil, fmt.Errorf("failed to get entries: %w", err)
	}

	return ToWorkEntryDTOs(entries), nil
}

// GetLockedEntries lists locked assignments deduplicated by triple, with the
// schedule date and task attached. Assignments whose schedule or item no
// longer resolves are dropped from the result.
func (s *WorkEntryApplicationService) GetLockedEntries(ctx context.Context) ([]LockedEntryDTO, error) {
	entries, err := s.repo.FindLocked(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list locked entries")
		return nil, fmt.Errorf("failed to list locked entries: %w", err)
	}

	type triple struct {
		scheduleID, itemID, employeeID string
	}

	seen := make(map[triple]bool)
	schedules := make(map[string]*domain.Schedule)
	refs := make([]domain.LockedEntryRef, 0, len(entries))

	for _, entry := range entries {
		key := triple{entry.ScheduleID, entry.ScheduleItemID, entry.EmployeeID}
		if seen[key] {
			continue
		}
		seen[key] = true

		schedule, ok := schedules[entry.ScheduleID]
		if !ok {
			schedule, err = s.scheduleRepo.FindByScheduleID(ctx, entry.ScheduleID)
			if err != nil {
				s.logger.WithError(err).Error("Failed to resolve schedule for locked entry", "scheduleId", entry.ScheduleID)
				return nil, fmt.Errorf("failed to resolve schedule for locked entry: %w", err)
			}
			schedules[entry.ScheduleID] = schedule
		}
		if schedule == nil {
			continue
		}

		item := schedule.FindItem(entry.ScheduleItemID)
		if item == nil {
			continue
		}

		refs = append(refs, domain.LockedEntryRef{
			ScheduleID: entry.ScheduleID,
			ItemID:     entry.ScheduleItemID,
			EmployeeID: entry.EmployeeID,
			Date:       schedule.Date,
			Task:       item.Task,
		})
	}

	return ToLockedEntryDTOs(refs), nil
}
