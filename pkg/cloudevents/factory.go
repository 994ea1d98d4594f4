package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for workforce domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new WorkforceCloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *WorkforceCloudEvent {
	return &WorkforceCloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}
}

// CreateScheduleCreatedEvent creates a ScheduleCreated event
func (f *EventFactory) CreateScheduleCreatedEvent(
	ctx context.Context,
	scheduleID string,
	date string,
	taskNames []string,
) *WorkforceCloudEvent {
	data := ScheduleCreatedData{
		ScheduleID: scheduleID,
		Date:       date,
		TaskNames:  taskNames,
		ItemCount:  len(taskNames),
	}
	event := f.CreateEvent(ctx, ScheduleCreated, "schedule/"+scheduleID, data)
	event.ScheduleID = scheduleID
	return event
}

// CreateWorkEntryRecordedEvent creates a WorkEntryRecorded event
func (f *EventFactory) CreateWorkEntryRecordedEvent(
	ctx context.Context,
	entryID, scheduleID, itemID, employeeID, task string,
	quantity float64,
) *WorkforceCloudEvent {
	data := WorkEntryRecordedData{
		EntryID:    entryID,
		ScheduleID: scheduleID,
		ItemID:     itemID,
		EmployeeID: employeeID,
		Task:       task,
		Quantity:   quantity,
	}
	event := f.CreateEvent(ctx, WorkEntryRecorded, "work-entry/"+entryID, data)
	event.ScheduleID = scheduleID
	event.EmployeeID = employeeID
	return event
}

// CreateLockStateChangedEvent creates an EntriesLocked or EntriesUnlocked event
func (f *EventFactory) CreateLockStateChangedEvent(
	ctx context.Context,
	scheduleID, itemID, employeeID string,
	locked bool,
	rowCount int64,
) *WorkforceCloudEvent {
	eventType := EntriesLocked
	if !locked {
		eventType = EntriesUnlocked
	}
	data := LockStateChangedData{
		ScheduleID: scheduleID,
		ItemID:     itemID,
		EmployeeID: employeeID,
		Locked:     locked,
		RowCount:   rowCount,
	}
	event := f.CreateEvent(ctx, eventType, "schedule/"+scheduleID+"/item/"+itemID, data)
	event.ScheduleID = scheduleID
	event.EmployeeID = employeeID
	return event
}
