package cache

import (
	"context"
	"testing"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

type countingScheduleRepo struct {
	schedules map[string]*domain.Schedule
	findCalls int
}

func newCountingScheduleRepo() *countingScheduleRepo {
	return &countingScheduleRepo{schedules: make(map[string]*domain.Schedule)}
}

func (r *countingScheduleRepo) Save(ctx context.Context, schedule *domain.Schedule) error {
	r.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (r *countingScheduleRepo) FindByScheduleID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	r.findCalls++
	return r.schedules[scheduleID], nil
}

func (r *countingScheduleRepo) FindByDate(ctx context.Context, date string) ([]*domain.Schedule, error) {
	return nil, nil
}

func (r *countingScheduleRepo) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Schedule, error) {
	return nil, nil
}

func (r *countingScheduleRepo) FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.Schedule, error) {
	return nil, nil
}

func (r *countingScheduleRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.Schedule, error) {
	return nil, nil
}

func (r *countingScheduleRepo) Delete(ctx context.Context, schedule *domain.Schedule) error {
	delete(r.schedules, schedule.ScheduleID)
	return nil
}

func TestCachedScheduleRepository(t *testing.T) {
	ctx := context.Background()
	inner := newCountingScheduleRepo()
	repo := NewCachedScheduleRepository(inner)

	schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
		{Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
	})
	inner.schedules[schedule.ScheduleID] = schedule

	t.Run("second read served from cache", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			found, err := repo.FindByScheduleID(ctx, schedule.ScheduleID)
			if err != nil || found == nil {
				t.Fatalf("FindByScheduleID failed: %v", err)
			}
		}
		if inner.findCalls != 1 {
			t.Errorf("backing store reads = %d, want 1", inner.findCalls)
		}
	})

	t.Run("delete invalidates cache", func(t *testing.T) {
		if err := repo.Delete(ctx, schedule); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		found, err := repo.FindByScheduleID(ctx, schedule.ScheduleID)
		if err != nil {
			t.Fatalf("FindByScheduleID error: %v", err)
		}
		if found != nil {
			t.Error("deleted schedule still served from cache")
		}
	})

	t.Run("save refreshes cache", func(t *testing.T) {
		updated, _ := domain.NewSchedule("2026-03-03", []domain.ScheduleItem{
			{Task: domain.TaskGrading, EmployeeIDs: []string{"EMP-2"}},
		})
		if err := repo.Save(ctx, updated); err != nil {
			t.Fatalf("Save error: %v", err)
		}

		before := inner.findCalls
		found, err := repo.FindByScheduleID(ctx, updated.ScheduleID)
		if err != nil || found == nil {
			t.Fatalf("FindByScheduleID failed: %v", err)
		}
		if inner.findCalls != before {
			t.Error("read after save should not hit the backing store")
		}
	})
}

type countingEmployeeRepo struct {
	employees map[string]*domain.Employee
	findCalls int
}

func (r *countingEmployeeRepo) Save(ctx context.Context, employee *domain.Employee) error {
	r.employees[employee.EmployeeID] = employee
	return nil
}

func (r *countingEmployeeRepo) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	r.findCalls++
	return r.employees[employeeID], nil
}

func (r *countingEmployeeRepo) FindAll(ctx context.Context, limit, offset int) ([]*domain.Employee, error) {
	return nil, nil
}

func (r *countingEmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	delete(r.employees, employeeID)
	return nil
}

func TestCachedEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	inner := &countingEmployeeRepo{employees: make(map[string]*domain.Employee)}
	repo := NewCachedEmployeeRepository(inner)

	employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
	inner.employees["EMP-1"] = employee

	for i := 0; i < 2; i++ {
		found, err := repo.FindByEmployeeID(ctx, "EMP-1")
		if err != nil || found == nil {
			t.Fatalf("FindByEmployeeID failed: %v", err)
		}
	}
	if inner.findCalls != 1 {
		t.Errorf("backing store reads = %d, want 1", inner.findCalls)
	}

	if err := repo.Delete(ctx, "EMP-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if found, _ := repo.FindByEmployeeID(ctx, "EMP-1"); found != nil {
		t.Error("deleted employee still served from cache")
	}
}
