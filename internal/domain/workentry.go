package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Work entry errors
var (
	ErrEntryTripleLocked   = errors.New("entries for this assignment are locked")
	ErrEntryRefsRequired   = errors.New("work entry must reference a schedule, item and employee")
	ErrNoEntriesToLock     = errors.New("no work entries exist for this assignment")
	ErrPayloadKindMismatch = errors.New("payload kind does not match its data")
)

// PayloadKind tags the task-specific payload variant on a work entry
type PayloadKind string

const (
	PayloadNone          PayloadKind = ""
	PayloadScaleReadings PayloadKind = "scale_readings"
	PayloadCartons       PayloadKind = "cartons"
	PayloadMassInputs    PayloadKind = "mass_inputs"
	PayloadOutputEntries PayloadKind = "output_entries"
)

// ScaleReading is one scale's recorded mass, optionally with a stick count
type ScaleReading struct {
	Scale  int     `bson:"scale" json:"scale"`
	Mass   float64 `bson:"mass" json:"mass"`
	Sticks int     `bson:"sticks,omitempty" json:"sticks,omitempty"`
}

// CartonLine is one carton's recorded contents
type CartonLine struct {
	CartonNumber int     `bson:"cartonNumber" json:"cartonNumber"`
	Mass         float64 `bson:"mass" json:"mass"`
}

// MassInput is one labelled mass measurement feeding a machine run
type MassInput struct {
	Label string  `bson:"label" json:"label"`
	Mass  float64 `bson:"mass" json:"mass"`
}

// OutputLine is output recorded against a class grade or category
type OutputLine struct {
	Category string  `bson:"category" json:"category"`
	Mass     float64 `bson:"mass" json:"mass"`
}

// TaskPayload is a tagged variant holding the task-specific breakdown of a
// work entry. Exactly the slice matching Kind is populated.
type TaskPayload struct {
	Kind          PayloadKind    `bson:"kind" json:"kind"`
	ScaleReadings []ScaleReading `bson:"scaleReadings,omitempty" json:"scaleReadings,omitempty"`
	Cartons       []CartonLine   `bson:"cartons,omitempty" json:"cartons,omitempty"`
	MassInputs    []MassInput    `bson:"massInputs,omitempty" json:"massInputs,omitempty"`
	OutputEntries []OutputLine   `bson:"outputEntries,omitempty" json:"outputEntries,omitempty"`
}

// Validate checks that the populated data matches the declared kind
func (p *TaskPayload) Validate() error {
	switch p.Kind {
	case PayloadNone:
		if len(p.ScaleReadings) > 0 || len(p.Cartons) > 0 || len(p.MassInputs) > 0 || len(p.OutputEntries) > 0 {
			return ErrPayloadKindMismatch
		}
	case PayloadScaleReadings:
		if len(p.Cartons) > 0 || len(p.MassInputs) > 0 || len(p.OutputEntries) > 0 {
			return ErrPayloadKindMismatch
		}
	case PayloadCartons:
		if len(p.ScaleReadings) > 0 || len(p.MassInputs) > 0 || len(p.OutputEntries) > 0 {
			return ErrPayloadKindMismatch
		}
	case PayloadMassInputs:
		if len(p.ScaleReadings) > 0 || len(p.Cartons) > 0 || len(p.OutputEntries) > 0 {
			return ErrPayloadKindMismatch
		}
	case PayloadOutputEntries:
		if len(p.ScaleReadings) > 0 || len(p.Cartons) > 0 || len(p.MassInputs) > 0 {
			return ErrPayloadKindMismatch
		}
	default:
		return ErrPayloadKindMismatch
	}
	return nil
}

// TotalSticks sums stick counts across scale readings. Zero for every other
// payload kind.
func (p *TaskPayload) TotalSticks() int {
	if p.Kind != PayloadScaleReadings {
		return 0
	}
	total := 0
	for _, r := range p.ScaleReadings {
		total += r.Sticks
	}
	return total
}

// TotalMass sums the recorded mass of the payload's lines
func (p *TaskPayload) TotalMass() float64 {
	var total float64
	switch p.Kind {
	case PayloadScaleReadings:
		for _, r := range p.ScaleReadings {
			total += r.Mass
		}
	case PayloadCartons:
		for _, c := range p.Cartons {
			total += c.Mass
		}
	case PayloadMassInputs:
		for _, m := range p.MassInputs {
			total += m.Mass
		}
	case PayloadOutputEntries:
		for _, o := range p.OutputEntries {
			total += o.Mass
		}
	case PayloadNone:
	}
	return total
}

// WorkEntry records one act of output by one employee against one schedule
// item. Entries accumulate per (schedule, item, employee) while unlocked.
type WorkEntry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	EntryID        string             `bson:"entryId"`
	ScheduleID     string             `bson:"scheduleId"`
	ScheduleItemID string             `bson:"scheduleItemId"`
	EmployeeID     string             `bson:"employeeId"`
	Quantity       float64            `bson:"quantity"`
	Remarks        string             `bson:"remarks,omitempty"`
	Payload        *TaskPayload       `bson:"payload,omitempty"`
	TotalSticks    int                `bson:"totalSticks,omitempty"`
	Locked         bool               `bson:"locked"`
	RecordedAt     time.Time          `bson:"recordedAt"`
	DomainEvents   []DomainEvent      `bson:"-"`
}

// NewWorkEntry creates a new WorkEntry. TotalSticks is derived from a scale
// readings payload only when the caller did not supply an explicit total.
func NewWorkEntry(scheduleID, itemID, employeeID string, quantity float64, remarks string, payload *TaskPayload, explicitTotalSticks int) (*WorkEntry, error) {
	if scheduleID == "" || itemID == "" || employeeID == "" {
		return nil, ErrEntryRefsRequired
	}
	if payload != nil {
		if err := payload.Validate(); err != nil {
			return nil, err
		}
	}

	totalSticks := explicitTotalSticks
	if totalSticks == 0 && payload != nil {
		totalSticks = payload.TotalSticks()
	}

	now := time.Now()
	entry := &WorkEntry{
		EntryID:        NewEntryID(),
		ScheduleID:     scheduleID,
		ScheduleItemID: itemID,
		EmployeeID:     employeeID,
		Quantity:       quantity,
		Remarks:        remarks,
		Payload:        payload,
		TotalSticks:    totalSticks,
		Locked:         false,
		RecordedAt:     now,
		DomainEvents:   make([]DomainEvent, 0),
	}

	entry.AddDomainEvent(&WorkEntryRecordedEvent{
		EntryID:    entry.EntryID,
		ScheduleID: scheduleID,
		ItemID:     itemID,
		EmployeeID: employeeID,
		Quantity:   quantity,
		RecordedAt: now,
	})

	return entry, nil
}

// SameAssignment reports whether the entry belongs to the given triple
func (w *WorkEntry) SameAssignment(scheduleID, itemID, employeeID string) bool {
	return w.ScheduleID == scheduleID &&
		w.ScheduleItemID == itemID &&
		w.EmployeeID == employeeID
}

// AddDomainEvent adds a domain event
func (w *WorkEntry) AddDomainEvent(event DomainEvent) {
	w.DomainEvents = append(w.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (w *WorkEntry) ClearDomainEvents() {
	w.DomainEvents = make([]DomainEvent, 0)
}

// GetDomainEvents returns all domain events
func (w *WorkEntry) GetDomainEvents() []DomainEvent {
	return w.DomainEvents
}

// LockedEntryRef identifies a locked assignment with its schedule context
type LockedEntryRef struct {
	ScheduleID string   `json:"scheduleId"`
	ItemID     string   `json:"itemId"`
	EmployeeID string   `json:"employeeId"`
	Date       string   `json:"date"`
	Task       TaskName `json:"task"`
}

// Work Entry Domain Events

// WorkEntryRecordedEvent is emitted when a work entry is recorded
type WorkEntryRecordedEvent struct {
	EntryID    string    `json:"entryId"`
	ScheduleID string    `json:"scheduleId"`
	ItemID     string    `json:"itemId"`
	EmployeeID string    `json:"employeeId"`
	Quantity   float64   `json:"quantity"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (e *WorkEntryRecordedEvent) EventType() string     { return "workentry.recorded" }
func (e *WorkEntryRecordedEvent) OccurredAt() time.Time { return e.RecordedAt }

// EntriesLockedEvent is emitted when an assignment's entries are locked
type EntriesLockedEvent struct {
	ScheduleID string    `json:"scheduleId"`
	ItemID     string    `json:"itemId"`
	EmployeeID string    `json:"employeeId"`
	RowCount   int64     `json:"rowCount"`
	LockedAt   time.Time `json:"lockedAt"`
}

func (e *EntriesLockedEvent) EventType() string     { return "workentry.entries.locked" }
func (e *EntriesLockedEvent) OccurredAt() time.Time { return e.LockedAt }

// EntriesUnlockedEvent is emitted when an assignment's entries are unlocked
type EntriesUnlockedEvent struct {
	ScheduleID string    `json:"scheduleId"`
	ItemID     string    `json:"itemId"`
	EmployeeID string    `json:"employeeId"`
	RowCount   int64     `json:"rowCount"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

func (e *EntriesUnlockedEvent) EventType() string     { return "workentry.entries.unlocked" }
func (e *EntriesUnlockedEvent) OccurredAt() time.Time { return e.UnlockedAt }
