package domain

// Conflict and lock policy. Pure predicates over already-fetched collections;
// callers turn a blocking result into a user-facing rejection.

// IsEmployeeAssignedForDate reports whether the employee is already assigned
// to any item of any schedule on the given date. The item identified by
// excludeItemID is skipped so that an employee already on the item under edit
// is not blocked from staying there. Pass an empty excludeItemID when
// creating a new item.
func IsEmployeeAssignedForDate(employeeID, date string, schedules []*Schedule, excludeItemID string) bool {
	for _, schedule := range schedules {
		if schedule.Date != date {
			continue
		}
		for i := range schedule.Items {
			item := &schedule.Items[i]
			if item.ItemID == excludeItemID && excludeItemID != "" {
				continue
			}
			if item.HasEmployee(employeeID) {
				return true
			}
		}
	}
	return false
}

// IsEntryLocked reports whether any entry matching the
// (scheduleID, itemID, employeeID) triple is locked. One locked row locks
// the whole triple.
func IsEntryLocked(scheduleID, itemID, employeeID string, entries []*WorkEntry) bool {
	for _, entry := range entries {
		if entry.SameAssignment(scheduleID, itemID, employeeID) && entry.Locked {
			return true
		}
	}
	return false
}

// CanMutateEntry reports whether a single entry may still be modified
func CanMutateEntry(entry *WorkEntry) bool {
	return !entry.Locked
}
