package domain

import "sort"

// RateTable maps a task name to its pay rate. Rates are a local calculation
// parameter supplied by the caller, not authoritative data. A missing task
// rates as zero.
type RateTable map[TaskName]float64

// Rate returns the rate for a task, zero when absent
func (r RateTable) Rate(task TaskName) float64 {
	return r[task]
}

// PayrollLine is one work entry priced against the rate table
type PayrollLine struct {
	Task     TaskName `json:"task"`
	Date     string   `json:"date"`
	Quantity float64  `json:"quantity"`
	Amount   float64  `json:"amount"`
}

// EmployeePayroll is the priced total for one employee over the range
type EmployeePayroll struct {
	EmployeeID  string        `json:"employeeId"`
	FullName    string        `json:"fullName"`
	TotalAmount float64       `json:"totalAmount"`
	Lines       []PayrollLine `json:"lines"`
}

// BuildPayroll prices work entries recorded between startDate and endDate
// inclusive and groups them by employee, sorted by full name. Entries whose
// schedule or item can no longer be resolved are skipped without being
// counted. Amounts are plain float64; presentation rounds to two decimals.
func BuildPayroll(startDate, endDate string, schedules []*Schedule, entries []*WorkEntry, employees []*Employee, rates RateTable) []EmployeePayroll {
	schedulesByID := make(map[string]*Schedule)
	for _, s := range schedules {
		if s.Date >= startDate && s.Date <= endDate {
			schedulesByID[s.ScheduleID] = s
		}
	}

	namesByID := make(map[string]string)
	for _, e := range employees {
		namesByID[e.EmployeeID] = e.FullName()
	}

	grouped := make(map[string]*EmployeePayroll)
	for _, entry := range entries {
		schedule, ok := schedulesByID[entry.ScheduleID]
		if !ok {
			continue
		}
		item := schedule.FindItem(entry.ScheduleItemID)
		if item == nil {
			continue
		}

		amount := entry.Quantity * rates.Rate(item.Task)

		payroll, ok := grouped[entry.EmployeeID]
		if !ok {
			payroll = &EmployeePayroll{
				EmployeeID: entry.EmployeeID,
				FullName:   namesByID[entry.EmployeeID],
				Lines:      make([]PayrollLine, 0),
			}
			grouped[entry.EmployeeID] = payroll
		}

		payroll.TotalAmount += amount
		payroll.Lines = append(payroll.Lines, PayrollLine{
			Task:     item.Task,
			Date:     schedule.Date,
			Quantity: entry.Quantity,
			Amount:   amount,
		})
	}

	result := make([]EmployeePayroll, 0, len(grouped))
	for _, payroll := range grouped {
		result = append(result, *payroll)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullName < result[j].FullName
	})

	return result
}
