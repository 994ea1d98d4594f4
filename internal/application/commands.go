package application

import "encoding/json"

// Employee Commands

// CreateEmployeeCommand creates a new employee
type CreateEmployeeCommand struct {
	EmployeeID       string `json:"employeeId"`
	Name             string `json:"name"`
	Surname          string `json:"surname"`
	NationalID       string `json:"nationalId"`
	Contact          string `json:"contact"`
	Address          string `json:"address"`
	Gender           string `json:"gender"`
	NextOfKinName    string `json:"nextOfKinName"`
	NextOfKinContact string `json:"nextOfKinContact"`
}

// UpdateEmployeeCommand updates an employee
type UpdateEmployeeCommand struct {
	EmployeeID       string `json:"employeeId"`
	Name             string `json:"name"`
	Surname          string `json:"surname"`
	NationalID       string `json:"nationalId"`
	Contact          string `json:"contact"`
	Address          string `json:"address"`
	Gender           string `json:"gender"`
	NextOfKinName    string `json:"nextOfKinName"`
	NextOfKinContact string `json:"nextOfKinContact"`
}

// DeleteEmployeeCommand deletes an employee
type DeleteEmployeeCommand struct {
	EmployeeID string `json:"employeeId"`
}

// Employee Queries

// GetEmployeeQuery retrieves an employee by ID
type GetEmployeeQuery struct {
	EmployeeID string `json:"employeeId"`
}

// ListEmployeesQuery lists all employees
type ListEmployeesQuery struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Schedule Commands

// ScheduleItemInput is one item of a create or update submission
type ScheduleItemInput struct {
	ItemID         string   `json:"itemId,omitempty"`
	Task           string   `json:"task"`
	RequiredCount  int      `json:"requiredCount"`
	EmployeeIDs    []string `json:"employeeIds"`
	TargetMass     float64  `json:"targetMass,omitempty"`
	NumberOfScales int      `json:"numberOfScales,omitempty"`
	NumberOfBales  int      `json:"numberOfBales,omitempty"`
	ClassGrades    []string `json:"classGrades,omitempty"`
	Quantity       float64  `json:"quantity,omitempty"`
}

// CreateScheduleCommand creates a schedule for one date
type CreateScheduleCommand struct {
	Date  string              `json:"date"`
	Items []ScheduleItemInput `json:"items"`
}

// UpdateScheduleCommand replaces a schedule's item list wholesale
type UpdateScheduleCommand struct {
	ScheduleID string              `json:"scheduleId"`
	Date       string              `json:"date"`
	Items      []ScheduleItemInput `json:"items"`
}

// DeleteScheduleCommand deletes a schedule and its work entries
type DeleteScheduleCommand struct {
	ScheduleID string `json:"scheduleId"`
}

// Schedule Queries

// GetScheduleQuery retrieves a schedule by ID
type GetScheduleQuery struct {
	ScheduleID string `json:"scheduleId"`
}

// ListSchedulesQuery lists all schedules
type ListSchedulesQuery struct {
	Date   string `json:"date"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// GetSchedulesByEmployeeQuery lists schedules assigning an employee
type GetSchedulesByEmployeeQuery struct {
	EmployeeID string `json:"employeeId"`
}

// CheckAssignmentQuery asks whether an employee is already booked on a date
type CheckAssignmentQuery struct {
	EmployeeID    string `json:"employeeId"`
	Date          string `json:"date"`
	ExcludeItemID string `json:"excludeItemId,omitempty"`
}

// Work Entry Commands

// TaskPayloadInput carries the task-specific breakdown of a submission
type TaskPayloadInput struct {
	Kind          string               `json:"kind"`
	ScaleReadings []ScaleReadingInput  `json:"scaleReadings,omitempty"`
	Cartons       []CartonLineInput    `json:"cartons,omitempty"`
	MassInputs    []MassInputLineInput `json:"massInputs,omitempty"`
	OutputEntries []OutputLineInput    `json:"outputEntries,omitempty"`
}

// ScaleReadingInput is one scale reading of a submission
type ScaleReadingInput struct {
	Scale  int     `json:"scale"`
	Mass   float64 `json:"mass"`
	Sticks int     `json:"sticks,omitempty"`
}

// CartonLineInput is one carton line of a submission
type CartonLineInput struct {
	CartonNumber int     `json:"cartonNumber"`
	Mass         float64 `json:"mass"`
}

// MassInputLineInput is one mass input line of a submission
type MassInputLineInput struct {
	Label string  `json:"label"`
	Mass  float64 `json:"mass"`
}

// OutputLineInput is one output line of a submission
type OutputLineInput struct {
	Category string  `json:"category"`
	Mass     float64 `json:"mass"`
}

// RecordWorkEntryCommand appends a work entry for an assignment
type RecordWorkEntryCommand struct {
	ScheduleID  string            `json:"scheduleId"`
	ItemID      string            `json:"itemId"`
	EmployeeID  string            `json:"employeeId"`
	Quantity    float64           `json:"quantity"`
	Remarks     string            `json:"remarks,omitempty"`
	Payload     *TaskPayloadInput `json:"payload,omitempty"`
	TotalSticks int               `json:"totalSticks,omitempty"`
}

// LockEntriesCommand locks every entry of an assignment
type LockEntriesCommand struct {
	ScheduleID string `json:"scheduleId"`
	ItemID     string `json:"itemId"`
	EmployeeID string `json:"employeeId"`
}

// UnlockEntriesCommand unlocks every entry of an assignment
type UnlockEntriesCommand struct {
	ScheduleID string `json:"scheduleId"`
	ItemID     string `json:"itemId"`
	EmployeeID string `json:"employeeId"`
}

// Work Entry Queries

// GetEmployeeEntriesQuery retrieves an employee's entries on a schedule
type GetEmployeeEntriesQuery struct {
	ScheduleID string `json:"scheduleId"`
	EmployeeID string `json:"employeeId"`
}

// Payroll Queries

// GeneratePayrollQuery prices recorded work over an inclusive date range
type GeneratePayrollQuery struct {
	StartDate string             `json:"startDate"`
	EndDate   string             `json:"endDate"`
	Rates     map[string]float64 `json:"rates"`
}

// Draft Commands

// SaveDraftCommand stores an in-progress work entry form snapshot
type SaveDraftCommand struct {
	Task       string          `json:"task"`
	ScheduleID string          `json:"scheduleId"`
	ItemID     string          `json:"itemId"`
	EmployeeID string          `json:"employeeId"`
	Payload    json.RawMessage `json:"payload"`
	Remarks    string          `json:"remarks,omitempty"`
}

// GetDraftQuery retrieves a stored draft
type GetDraftQuery struct {
	Task       string `json:"task"`
	ScheduleID string `json:"scheduleId"`
	ItemID     string `json:"itemId"`
	EmployeeID string `json:"employeeId"`
}

// ClearDraftCommand removes a stored draft
type ClearDraftCommand struct {
	Task       string `json:"task"`
	ScheduleID string `json:"scheduleId"`
	ItemID     string `json:"itemId"`
	EmployeeID string `json:"employeeId"`
}

// User Commands

// UpsertUserCommand creates or updates a user's role binding
type UpsertUserCommand struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// User Queries

// GetUserQuery retrieves a user by email
type GetUserQuery struct {
	Email string `json:"email"`
}
