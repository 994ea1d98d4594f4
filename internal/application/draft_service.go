package application

import (
	"context"
	"fmt"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// DraftRepository interface for draft persistence
type DraftRepository interface {
	Save(ctx context.Context, draft *domain.Draft) error
	Find(ctx context.Context, key domain.DraftKey) (*domain.Draft, error)
	Delete(ctx context.Context, key domain.DraftKey) error
}

// DraftApplicationService handles saved-progress drafts for work entry forms
type DraftApplicationService struct {
	repo   DraftRepository
	logger *logging.Logger
}

// NewDraftApplicationService creates a new DraftApplicationService
func NewDraftApplicationService(repo DraftRepository, logger *logging.Logger) *DraftApplicationService {
	return &DraftApplicationService{
		repo:   repo,
		logger: logger,
	}
}

func draftKeyFrom(task, scheduleID, itemID, employeeID string) domain.DraftKey {
	return domain.DraftKey{
		Task:       domain.TaskName(task),
		ScheduleID: scheduleID,
		ItemID:     itemID,
		EmployeeID: employeeID,
	}
}

// SaveDraft stores or refreshes a form snapshot, resetting its TTL
func (s *DraftApplicationService) SaveDraft(ctx context.Context, cmd SaveDraftCommand) (*DraftDTO, error) {
	draft, err := domain.NewDraft(
		draftKeyFrom(cmd.Task, cmd.ScheduleID, cmd.ItemID, cmd.EmployeeID),
		cmd.Payload,
		cmd.Remarks,
	)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.repo.Save(ctx, draft); err != nil {
		s.logger.WithError(err).Error("Failed to save draft", "scheduleId", cmd.ScheduleID, "itemId", cmd.ItemID)
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return ToDraftDTO(draft), nil
}

// GetDraft retrieves a stored draft. Expired drafts read as absent.
func (s *DraftApplicationService) GetDraft(ctx context.Context, query GetDraftQuery) (*DraftDTO, error) {
	key := draftKeyFrom(query.Task, query.ScheduleID, query.ItemID, query.EmployeeID)
	if err := key.Validate(); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	draft, err := s.repo.Find(ctx, key)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get draft", "scheduleId", query.ScheduleID, "itemId", query.ItemID)
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	if draft == nil || draft.Expired() {
		return nil, errors.ErrNotFound("draft")
	}

	return ToDraftDTO(draft), nil
}

// ClearDraft removes a stored draft
func (s *DraftApplicationService) ClearDraft(ctx context.Context, cmd ClearDraftCommand) error {
	key := draftKeyFrom(cmd.Task, cmd.ScheduleID, cmd.ItemID, cmd.EmployeeID)
	if err := key.Validate(); err != nil {
		return errors.ErrValidation(err.Error())
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		s.logger.WithError(err).Error("Failed to clear draft", "scheduleId", cmd.ScheduleID, "itemId", cmd.ItemID)
		return fmt.Errorf("failed to clear draft: %w", err)
	}

	return nil
}

// Delete implements DraftStore so the work entry service can clear a draft
// after a successful submit.
func (s *DraftApplicationService) Delete(ctx context.Context, key domain.DraftKey) error {
	return s.repo.Delete(ctx, key)
}
