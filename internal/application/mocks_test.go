package application

import (
	"context"

	"github.com/agriwork-platform/workforce-service/pkg/logging"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// MockEmployeeRepository is a map-backed EmployeeRepository for testing
type MockEmployeeRepository struct {
	employees map[string]*domain.Employee
	saveErr   error
	findErr   error
}

func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{employees: make(map[string]*domain.Employee)}
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *domain.Employee) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.employees[employee.EmployeeID] = employee
	return nil
}

func (m *MockEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.employees[employeeID], nil
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Employee, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Employee
	for _, employee := range m.employees {
		result = append(result, employee)
	}
	return result, nil
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	delete(m.employees, employeeID)
	return nil
}

func (m *MockEmployeeRepository) AddEmployee(employee *domain.Employee) {
	m.employees[employee.EmployeeID] = employee
}

// MockScheduleRepository is a map-backed ScheduleRepository for testing
type MockScheduleRepository struct {
	schedules map[string]*domain.Schedule
	saveErr   error
	findErr   error
	deleteErr error
}

func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{schedules: make(map[string]*domain.Schedule)}
}

func (m *MockScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	schedule.ClearDomainEvents()
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *MockScheduleRepository) FindByScheduleID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.schedules[scheduleID], nil
}

func (m *MockScheduleRepository) FindByDate(ctx context.Context, date string) ([]*domain.Schedule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Schedule
	for _, schedule := range m.schedules {
		if schedule.Date == date {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func (m *MockScheduleRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Schedule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Schedule
	for _, schedule := range m.schedules {
		if schedule.Date >= startDate && schedule.Date <= endDate {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func (m *MockScheduleRepository) FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.Schedule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Schedule
	for _, schedule := range m.schedules {
		if schedule.HasEmployee(employeeID) {
			result = append(result, schedule)
		}
	}
	return result, nil
}

func (m *MockScheduleRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Schedule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Schedule
	for _, schedule := range m.schedules {
		result = append(result, schedule)
	}
	return result, nil
}

func (m *MockScheduleRepository) Delete(ctx context.Context, schedule *domain.Schedule) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.schedules, schedule.ScheduleID)
	return nil
}

func (m *MockScheduleRepository) AddSchedule(schedule *domain.Schedule) {
	m.schedules[schedule.ScheduleID] = schedule
}

// MockWorkEntryRepository is a map-backed WorkEntryRepository for testing
type MockWorkEntryRepository struct {
	entries   map[string]*domain.WorkEntry
	saveErr   error
	findErr   error
	deleteErr error
}

func NewMockWorkEntryRepository() *MockWorkEntryRepository {
	return &MockWorkEntryRepository{entries: make(map[string]*domain.WorkEntry)}
}

func (m *MockWorkEntryRepository) Save(ctx context.Context, entry *domain.WorkEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	entry.ClearDomainEvents()
	m.entries[entry.EntryID] = entry
	return nil
}

func (m *MockWorkEntryRepository) FindByAssignment(ctx context.Context, scheduleID, itemID, employeeID string) ([]*domain.WorkEntry, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.WorkEntry
	for _, entry := range m.entries {
		if entry.SameAssignment(scheduleID, itemID, employeeID) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (m *MockWorkEntryRepository) FindByScheduleAndEmployee(ctx context.Context, scheduleID, employeeID string) ([]*domain.WorkEntry, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.WorkEntry
	for _, entry := range m.entries {
		if entry.ScheduleID == scheduleID && entry.EmployeeID == employeeID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (m *MockWorkEntryRepository) FindByScheduleIDs(ctx context.Context, scheduleIDs []string) ([]*domain.WorkEntry, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	ids := make(map[string]bool, len(scheduleIDs))
	for _, id := range scheduleIDs {
		ids[id] = true
	}
	var result []*domain.WorkEntry
	for _, entry := range m.entries {
		if ids[entry.ScheduleID] {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (m *MockWorkEntryRepository) FindLocked(ctx context.Context) ([]*domain.WorkEntry, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.WorkEntry
	for _, entry := range m.entries {
		if entry.Locked {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (m *MockWorkEntryRepository) SetLocked(ctx context.Context, scheduleID, itemID, employeeID string, locked bool) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	var matched int64
	for _, entry := range m.entries {
		if entry.SameAssignment(scheduleID, itemID, employeeID) {
			entry.Locked = locked
			matched++
		}
	}
	return matched, nil
}

func (m *MockWorkEntryRepository) DeleteByScheduleID(ctx context.Context, scheduleID string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	var removed int64
	for id, entry := range m.entries {
		if entry.ScheduleID == scheduleID {
			delete(m.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MockWorkEntryRepository) CountByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	if m.findErr != nil {
		return 0, m.findErr
	}
	var count int64
	for _, entry := range m.entries {
		if entry.EmployeeID == employeeID {
			count++
		}
	}
	return count, nil
}

func (m *MockWorkEntryRepository) AddEntry(entry *domain.WorkEntry) {
	m.entries[entry.EntryID] = entry
}

// MockDraftRepository is a map-backed DraftRepository for testing
type MockDraftRepository struct {
	drafts     map[domain.DraftKey]*domain.Draft
	deleteKeys []domain.DraftKey
}

func NewMockDraftRepository() *MockDraftRepository {
	return &MockDraftRepository{drafts: make(map[domain.DraftKey]*domain.Draft)}
}

func (m *MockDraftRepository) Save(ctx context.Context, draft *domain.Draft) error {
	m.drafts[draft.Key] = draft
	return nil
}

func (m *MockDraftRepository) Find(ctx context.Context, key domain.DraftKey) (*domain.Draft, error) {
	return m.drafts[key], nil
}

func (m *MockDraftRepository) Delete(ctx context.Context, key domain.DraftKey) error {
	m.deleteKeys = append(m.deleteKeys, key)
	delete(m.drafts, key)
	return nil
}

// MockUserRepository is a map-backed UserRepository for testing
type MockUserRepository struct {
	users map[string]*domain.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.users[email], nil
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	var result []*domain.User
	for _, user := range m.users {
		result = append(result, user)
	}
	return result, nil
}

func testLogger() *logging.Logger {
	return logging.New(logging.DefaultConfig("test"))
}
