package application

import (
	"encoding/json"
	"time"
)

// EmployeeDTO represents an employee data transfer object
type EmployeeDTO struct {
	EmployeeID       string    `json:"employeeId"`
	Name             string    `json:"name"`
	Surname          string    `json:"surname"`
	FullName         string    `json:"fullName"`
	NationalID       string    `json:"nationalId"`
	Contact          string    `json:"contact"`
	Address          string    `json:"address"`
	Gender           string    `json:"gender"`
	NextOfKinName    string    `json:"nextOfKinName"`
	NextOfKinContact string    `json:"nextOfKinContact"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ScheduleItemDTO represents one task item of a schedule
type ScheduleItemDTO struct {
	ItemID         string   `json:"itemId"`
	Task           string   `json:"task"`
	RequiredCount  int      `json:"requiredCount"`
	EmployeeIDs    []string `json:"employeeIds"`
	TargetMass     float64  `json:"targetMass,omitempty"`
	NumberOfScales int      `json:"numberOfScales,omitempty"`
	NumberOfBales  int      `json:"numberOfBales,omitempty"`
	ClassGrades    []string `json:"classGrades,omitempty"`
	Quantity       float64  `json:"quantity,omitempty"`
}

// ScheduleDTO represents a schedule data transfer object
type ScheduleDTO struct {
	ScheduleID string            `json:"scheduleId"`
	Date       string            `json:"date"`
	Items      []ScheduleItemDTO `json:"items"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// TaskPayloadDTO represents the task-specific breakdown of a work entry
type TaskPayloadDTO struct {
	Kind          string               `json:"kind"`
	ScaleReadings []ScaleReadingInput  `json:"scaleReadings,omitempty"`
	Cartons       []CartonLineInput    `json:"cartons,omitempty"`
	MassInputs    []MassInputLineInput `json:"massInputs,omitempty"`
	OutputEntries []OutputLineInput    `json:"outputEntries,omitempty"`
}

// WorkEntryDTO represents a work entry data transfer object
type WorkEntryDTO struct {
	EntryID     string          `json:"entryId"`
	ScheduleID  string          `json:"scheduleId"`
	ItemID      string          `json:"itemId"`
	EmployeeID  string          `json:"employeeId"`
	Quantity    float64         `json:"quantity"`
	Remarks     string          `json:"remarks,omitempty"`
	Payload     *TaskPayloadDTO `json:"payload,omitempty"`
	TotalSticks int             `json:"totalSticks,omitempty"`
	Locked      bool            `json:"locked"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

// LockedEntryDTO identifies a locked assignment with its schedule context
type LockedEntryDTO struct {
	ScheduleID string `json:"scheduleId"`
	ItemID     string `json:"itemId"`
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Task       string `json:"task"`
}

// LockResultDTO reports the outcome of a lock or unlock operation
type LockResultDTO struct {
	ScheduleID string `json:"scheduleId"`
	ItemID     string `json:"itemId"`
	EmployeeID string `json:"employeeId"`
	Locked     bool   `json:"locked"`
	RowCount   int64  `json:"rowCount"`
}

// PayrollLineDTO is one priced work entry on a payroll report
type PayrollLineDTO struct {
	Task     string  `json:"task"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// EmployeePayrollDTO is one employee's priced totals over the range
type EmployeePayrollDTO struct {
	EmployeeID  string           `json:"employeeId"`
	FullName    string           `json:"fullName"`
	TotalAmount float64          `json:"totalAmount"`
	Lines       []PayrollLineDTO `json:"lines"`
}

// PayrollReportDTO is a full payroll report for a date range
type PayrollReportDTO struct {
	StartDate string               `json:"startDate"`
	EndDate   string               `json:"endDate"`
	Employees []EmployeePayrollDTO `json:"employees"`
}

// DraftDTO represents a stored work entry draft
type DraftDTO struct {
	Task       string          `json:"task"`
	ScheduleID string          `json:"scheduleId"`
	ItemID     string          `json:"itemId"`
	EmployeeID string          `json:"employeeId"`
	Payload    json.RawMessage `json:"payload"`
	Remarks    string          `json:"remarks,omitempty"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	ExpiresAt  time.Time       `json:"expiresAt"`
}

// UserDTO represents a user role binding
type UserDTO struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
