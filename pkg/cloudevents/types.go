package cloudevents

import (
	"time"
)

// EventType constants for workforce domain events
const (
	// Employee events
	EmployeeCreated = "workforce.employee.created"
	EmployeeUpdated = "workforce.employee.updated"
	EmployeeDeleted = "workforce.employee.deleted"

	// Schedule events
	ScheduleCreated = "workforce.schedule.created"
	ScheduleUpdated = "workforce.schedule.updated"
	ScheduleDeleted = "workforce.schedule.deleted"

	// Ledger events
	WorkEntryRecorded = "workforce.ledger.entry-recorded"
	EntriesLocked     = "workforce.ledger.entries-locked"
	EntriesUnlocked   = "workforce.ledger.entries-unlocked"
)

// Source constants for event sources
const (
	SourceWorkforce = "/workforce-service"
)

// WorkforceCloudEvent represents a CloudEvents v1.0 compliant event
type WorkforceCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Workforce-specific extensions
	CorrelationID string `json:"wfcorrelationid,omitempty"`
	ScheduleID    string `json:"wfscheduleid,omitempty"`
	EmployeeID    string `json:"wfemployeeid,omitempty"`
}

// ScheduleCreatedData carries the payload of a ScheduleCreated event
type ScheduleCreatedData struct {
	ScheduleID string   `json:"scheduleId"`
	Date       string   `json:"date"`
	TaskNames  []string `json:"taskNames"`
	ItemCount  int      `json:"itemCount"`
}

// ScheduleDeletedData carries the payload of a ScheduleDeleted event
type ScheduleDeletedData struct {
	ScheduleID     string `json:"scheduleId"`
	Date           string `json:"date"`
	EntriesRemoved int64  `json:"entriesRemoved"`
}

// WorkEntryRecordedData carries the payload of a WorkEntryRecorded event
type WorkEntryRecordedData struct {
	EntryID    string  `json:"entryId"`
	ScheduleID string  `json:"scheduleId"`
	ItemID     string  `json:"itemId"`
	EmployeeID string  `json:"employeeId"`
	Task       string  `json:"task"`
	Quantity   float64 `json:"quantity"`
}

// LockStateChangedData carries the payload of lock/unlock events
type LockStateChangedData struct {
	ScheduleID string `json:"scheduleId"`
	ItemID     string `json:"itemId"`
	EmployeeID string `json:"employeeId"`
	Locked     bool   `json:"locked"`
	RowCount   int64  `json:"rowCount"`
}
