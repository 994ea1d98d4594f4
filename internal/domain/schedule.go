package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule errors
var (
	ErrScheduleDateRequired  = errors.New("schedule date is required")
	ErrScheduleItemsRequired = errors.New("schedule must contain at least one item")
	ErrItemTaskRequired      = errors.New("schedule item task is required")
	ErrItemNoEmployees       = errors.New("schedule item must have at least one assigned employee")
	ErrDuplicateEmployee     = errors.New("employee appears in more than one item of the schedule")
	ErrEmployeeDoubleBooked  = errors.New("employee is already assigned to a task on this date")
)

// TaskName identifies the kind of work a schedule item covers
type TaskName string

const (
	TaskStripping     TaskName = "Stripping"
	TaskBailingLamina TaskName = "Bailing Lamina"
	TaskMachine       TaskName = "Machine"
	TaskBailingSticks TaskName = "Bailing Sticks"
	TaskTicketWork    TaskName = "Ticket-Based Work"
	TaskGrading       TaskName = "Grading"
)

// KnownTasks lists the suggested task set in display order
var KnownTasks = []TaskName{
	TaskStripping,
	TaskBailingLamina,
	TaskMachine,
	TaskBailingSticks,
	TaskTicketWork,
	TaskGrading,
}

// IsKnown reports whether the task is in the suggested set. Task names are
// free text, so an unknown task is not an error on its own.
func (t TaskName) IsKnown() bool {
	for _, known := range KnownTasks {
		if t == known {
			return true
		}
	}
	return false
}

// ScheduleItem is one task within a schedule with its assigned workers and
// task-specific parameters. Only the parameters relevant to the task carry
// meaning; the rest stay zero.
type ScheduleItem struct {
	ItemID         string   `bson:"itemId" json:"itemId"`
	Task           TaskName `bson:"task" json:"task"`
	RequiredCount  int      `bson:"requiredCount" json:"requiredCount"`
	EmployeeIDs    []string `bson:"employeeIds" json:"employeeIds"`
	TargetMass     float64  `bson:"targetMass,omitempty" json:"targetMass,omitempty"`
	NumberOfScales int      `bson:"numberOfScales,omitempty" json:"numberOfScales,omitempty"`
	NumberOfBales  int      `bson:"numberOfBales,omitempty" json:"numberOfBales,omitempty"`
	ClassGrades    []string `bson:"classGrades,omitempty" json:"classGrades,omitempty"`
	Quantity       float64  `bson:"quantity,omitempty" json:"quantity,omitempty"`
}

// HasEmployee reports whether the item assigns the given employee
func (i *ScheduleItem) HasEmployee(employeeID string) bool {
	for _, id := range i.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// Schedule represents the work plan for a single calendar date
type Schedule struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ScheduleID   string             `bson:"scheduleId"`
	Date         string             `bson:"date"` // YYYY-MM-DD
	Items        []ScheduleItem     `bson:"items"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	DomainEvents []DomainEvent      `bson:"-"`
}

// NewSchedule creates a new Schedule aggregate. Items must already be
// validated against the conflict policy; the schedule only enforces its own
// structural invariants.
func NewSchedule(date string, items []ScheduleItem) (*Schedule, error) {
	if date == "" {
		return nil, ErrScheduleDateRequired
	}
	if len(items) == 0 {
		return nil, ErrScheduleItemsRequired
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	now := time.Now()
	schedule := &Schedule{
		ScheduleID:   NewScheduleID(string(items[0].Task)),
		Date:         date,
		Items:        assignItemIDs(items),
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}

	schedule.AddDomainEvent(&ScheduleCreatedEvent{
		ScheduleID: schedule.ScheduleID,
		Date:       date,
		TaskNames:  schedule.TaskNames(),
		CreatedAt:  now,
	})

	return schedule, nil
}

// validateItems checks the structural invariants shared by create and update
func validateItems(items []ScheduleItem) error {
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Task == "" {
			return ErrItemTaskRequired
		}
		if len(item.EmployeeIDs) == 0 {
			return ErrItemNoEmployees
		}
		for _, id := range item.EmployeeIDs {
			if seen[id] {
				return ErrDuplicateEmployee
			}
			seen[id] = true
		}
	}
	return nil
}

// assignItemIDs fills in IDs for items that don't carry one yet
func assignItemIDs(items []ScheduleItem) []ScheduleItem {
	out := make([]ScheduleItem, len(items))
	for i, item := range items {
		if item.ItemID == "" {
			item.ItemID = NewItemID()
		}
		out[i] = item
	}
	return out
}

// ReplaceItems swaps the full item list of the schedule. No merge happens;
// callers pass the complete desired state.
func (s *Schedule) ReplaceItems(date string, items []ScheduleItem) error {
	if date == "" {
		return ErrScheduleDateRequired
	}
	if len(items) == 0 {
		return ErrScheduleItemsRequired
	}
	if err := validateItems(items); err != nil {
		return err
	}

	s.Date = date
	s.Items = assignItemIDs(items)
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(&ScheduleUpdatedEvent{
		ScheduleID: s.ScheduleID,
		Date:       date,
		TaskNames:  s.TaskNames(),
		UpdatedAt:  s.UpdatedAt,
	})

	return nil
}

// FindItem returns the item with the given ID, or nil
func (s *Schedule) FindItem(itemID string) *ScheduleItem {
	for i := range s.Items {
		if s.Items[i].ItemID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// HasEmployee reports whether any item on the schedule assigns the employee
func (s *Schedule) HasEmployee(employeeID string) bool {
	for i := range s.Items {
		if s.Items[i].HasEmployee(employeeID) {
			return true
		}
	}
	return false
}

// TaskNames returns the task name of every item in order
func (s *Schedule) TaskNames() []string {
	names := make([]string, len(s.Items))
	for i, item := range s.Items {
		names[i] = string(item.Task)
	}
	return names
}

// AddDomainEvent adds a domain event
func (s *Schedule) AddDomainEvent(event DomainEvent) {
	s.DomainEvents = append(s.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (s *Schedule) ClearDomainEvents() {
	s.DomainEvents = make([]DomainEvent, 0)
}

// GetDomainEvents returns all domain events
func (s *Schedule) GetDomainEvents() []DomainEvent {
	return s.DomainEvents
}

// Schedule Domain Events

// ScheduleCreatedEvent is emitted when a schedule is created
type ScheduleCreatedEvent struct {
	ScheduleID string    `json:"scheduleId"`
	Date       string    `json:"date"`
	TaskNames  []string  `json:"taskNames"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (e *ScheduleCreatedEvent) EventType() string     { return "schedule.created" }
func (e *ScheduleCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ScheduleUpdatedEvent is emitted when a schedule's items are replaced
type ScheduleUpdatedEvent struct {
	ScheduleID string    `json:"scheduleId"`
	Date       string    `json:"date"`
	TaskNames  []string  `json:"taskNames"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e *ScheduleUpdatedEvent) EventType() string     { return "schedule.updated" }
func (e *ScheduleUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// ScheduleDeletedEvent is emitted after a schedule and its entries are removed
type ScheduleDeletedEvent struct {
	ScheduleID     string    `json:"scheduleId"`
	Date           string    `json:"date"`
	EntriesRemoved int64     `json:"entriesRemoved"`
	DeletedAt      time.Time `json:"deletedAt"`
}

func (e *ScheduleDeletedEvent) EventType() string     { return "schedule.deleted" }
func (e *ScheduleDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
