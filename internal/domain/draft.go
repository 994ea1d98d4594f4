package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// Draft errors
var (
	ErrDraftKeyIncomplete = errors.New("draft key must name a task, schedule, item and employee")
)

// DefaultDraftTTL is how long an untouched draft survives before expiry
const DefaultDraftTTL = 14 * 24 * time.Hour

// DraftKey identifies a saved-progress draft for one work entry form
type DraftKey struct {
	Task       TaskName `bson:"task" json:"task"`
	ScheduleID string   `bson:"scheduleId" json:"scheduleId"`
	ItemID     string   `bson:"itemId" json:"itemId"`
	EmployeeID string   `bson:"employeeId" json:"employeeId"`
}

// Validate checks that every key component is present
func (k DraftKey) Validate() error {
	if k.Task == "" || k.ScheduleID == "" || k.ItemID == "" || k.EmployeeID == "" {
		return ErrDraftKeyIncomplete
	}
	return nil
}

// Draft is an in-progress work entry form snapshot. Drafts are a convenience
// layer, not data of record; they expire on TTL and are cleared on submit.
type Draft struct {
	Key       DraftKey        `bson:"key" json:"key"`
	Payload   json.RawMessage `bson:"payload" json:"payload"`
	Remarks   string          `bson:"remarks,omitempty" json:"remarks,omitempty"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt"`
	ExpiresAt time.Time       `bson:"expiresAt" json:"expiresAt"`
}

// NewDraft creates a draft snapshot with a fresh expiry
func NewDraft(key DraftKey, payload json.RawMessage, remarks string) (*Draft, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Draft{
		Key:       key,
		Payload:   payload,
		Remarks:   remarks,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultDraftTTL),
	}, nil
}

// Expired reports whether the draft is past its TTL
func (d *Draft) Expired() bool {
	return time.Now().After(d.ExpiresAt)
}
