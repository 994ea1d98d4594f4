package application

import (
	"context"
	"testing"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

func createScheduleTestService() (*ScheduleApplicationService, *MockScheduleRepository, *MockWorkEntryRepository) {
	repo := NewMockScheduleRepository()
	entryRepo := NewMockWorkEntryRepository()
	service := NewScheduleApplicationService(repo, entryRepo, testLogger(), nil)
	return service, repo, entryRepo
}

func TestScheduleApplicationService_CreateSchedule(t *testing.T) {
	t.Run("creates schedule successfully", func(t *testing.T) {
		service, _, _ := createScheduleTestService()
		ctx := context.Background()

		cmd := CreateScheduleCommand{
			Date: "2026-03-02",
			Items: []ScheduleItemInput{
				{Task: "Stripping", RequiredCount: 2, EmployeeIDs: []string{"EMP-1", "EMP-2"}},
			},
		}

		dto, err := service.CreateSchedule(ctx, cmd)
		if err != nil {
			t.Fatalf("CreateSchedule() error = %v", err)
		}
		if dto.Date != "2026-03-02" {
			t.Errorf("Date = %v, want 2026-03-02", dto.Date)
		}
		if len(dto.Items) != 1 || dto.Items[0].ItemID == "" {
			t.Errorf("Items = %v, want one item with generated id", dto.Items)
		}
	})

	t.Run("rejects employee already booked on the date", func(t *testing.T) {
		service, repo, _ := createScheduleTestService()
		ctx := context.Background()

		existing, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskMachine, EmployeeIDs: []string{"EMP-1"}},
		})
		repo.AddSchedule(existing)

		cmd := CreateScheduleCommand{
			Date: "2026-03-02",
			Items: []ScheduleItemInput{
				{Task: "Stripping", EmployeeIDs: []string{"EMP-1"}},
			},
		}

		if _, err := service.CreateSchedule(ctx, cmd); err == nil {
			t.Fatal("CreateSchedule() should reject a double-booked employee")
		}
	})

	t.Run("allows same employee on a different date", func(t *testing.T) {
		service, repo, _ := createScheduleTestService()
		ctx := context.Background()

		existing, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskMachine, EmployeeIDs: []string{"EMP-1"}},
		})
		repo.AddSchedule(existing)

		cmd := CreateScheduleCommand{
			Date: "2026-03-03",
			Items: []ScheduleItemInput{
				{Task: "Stripping", EmployeeIDs: []string{"EMP-1"}},
			},
		}

		if _, err := service.CreateSchedule(ctx, cmd); err != nil {
			t.Fatalf("CreateSchedule() error = %v", err)
		}
	})

	t.Run("rejects item without employees", func(t *testing.T) {
		service, _, _ := createScheduleTestService()
		ctx := context.Background()

		cmd := CreateScheduleCommand{
			Date:  "2026-03-02",
			Items: []ScheduleItemInput{{Task: "Stripping"}},
		}

		if _, err := service.CreateSchedule(ctx, cmd); err == nil {
			t.Fatal("CreateSchedule() should reject an item with no employees")
		}
	})
}

func TestScheduleApplicationService_UpdateSchedule(t *testing.T) {
	t.Run("replaces items wholesale", func(t *testing.T) {
		service, repo, _ := createScheduleTestService()
		ctx := context.Background()

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
			{Task: domain.TaskGrading, EmployeeIDs: []string{"EMP-2"}},
		})
		repo.AddSchedule(schedule)

		cmd := UpdateScheduleCommand{
			ScheduleID: schedule.ScheduleID,
			Date:       "2026-03-02",
			Items: []ScheduleItemInput{
				{Task: "Machine", EmployeeIDs: []string{"EMP-3"}},
			},
		}

		dto, err := service.UpdateSchedule(ctx, cmd)
		if err != nil {
			t.Fatalf("UpdateSchedule() error = %v", err)
		}
		if len(dto.Items) != 1 || dto.Items[0].Task != "Machine" {
			t.Errorf("Items = %v, want single Machine item", dto.Items)
		}
	})

	t.Run("employee staying on the schedule under edit is not a conflict", func(t *testing.T) {
		service, repo, _ := createScheduleTestService()
		ctx := context.Background()

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		repo.AddSchedule(schedule)

		cmd := UpdateScheduleCommand{
			ScheduleID: schedule.ScheduleID,
			Date:       "2026-03-02",
			Items: []ScheduleItemInput{
				{Task: "Stripping", EmployeeIDs: []string{"EMP-1"}},
			},
		}

		if _, err := service.UpdateSchedule(ctx, cmd); err != nil {
			t.Fatalf("UpdateSchedule() error = %v", err)
		}
	})

	t.Run("conflict against another schedule on the same date still blocks", func(t *testing.T) {
		service, repo, _ := createScheduleTestService()
		ctx := context.Background()

		other, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskMachine, EmployeeIDs: []string{"EMP-9"}},
		})
		repo.AddSchedule(other)

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		repo.AddSchedule(schedule)

		cmd := UpdateScheduleCommand{
			ScheduleID: schedule.ScheduleID,
			Date:       "2026-03-02",
			Items: []ScheduleItemInput{
				{Task: "Stripping", EmployeeIDs: []string{"EMP-9"}},
			},
		}

		if _, err := service.UpdateSchedule(ctx, cmd); err == nil {
			t.Fatal("UpdateSchedule() should reject an employee booked on another schedule")
		}
	})

	t.Run("returns not found for unknown schedule", func(t *testing.T) {
		service, _, _ := createScheduleTestService()
		ctx := context.Background()

		cmd := UpdateScheduleCommand{
			ScheduleID: "SCH-MISSING",
			Date:       "2026-03-02",
			Items:      []ScheduleItemInput{{Task: "Stripping", EmployeeIDs: []string{"EMP-1"}}},
		}

		if _, err := service.UpdateSchedule(ctx, cmd); err == nil {
			t.Fatal("UpdateSchedule() should return error for unknown schedule")
		}
	})
}

func TestScheduleApplicationService_DeleteSchedule(t *testing.T) {
	t.Run("deletes entries before the schedule", func(t *testing.T) {
		service, repo, entryRepo := createScheduleTestService()
		ctx := context.Background()

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{ItemID: "ITM-1", Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		repo.AddSchedule(schedule)

		entry, _ := domain.NewWorkEntry(schedule.ScheduleID, "ITM-1", "EMP-1", 10, "", nil, 0)
		entryRepo.AddEntry(entry)

		if err := service.DeleteSchedule(ctx, DeleteScheduleCommand{ScheduleID: schedule.ScheduleID}); err != nil {
			t.Fatalf("DeleteSchedule() error = %v", err)
		}

		if got, _ := repo.FindByScheduleID(ctx, schedule.ScheduleID); got != nil {
			t.Error("schedule still present after delete")
		}
		if count, _ := entryRepo.CountByEmployeeID(ctx, "EMP-1"); count != 0 {
			t.Errorf("entries remaining = %d, want 0", count)
		}
	})

	t.Run("keeps the schedule when entry deletion fails", func(t *testing.T) {
		service, repo, entryRepo := createScheduleTestService()
		ctx := context.Background()

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		repo.AddSchedule(schedule)
		entryRepo.deleteErr = context.DeadlineExceeded

		if err := service.DeleteSchedule(ctx, DeleteScheduleCommand{ScheduleID: schedule.ScheduleID}); err == nil {
			t.Fatal("DeleteSchedule() should fail when entry deletion fails")
		}

		if got, _ := repo.FindByScheduleID(ctx, schedule.ScheduleID); got == nil {
			t.Error("schedule removed despite entry deletion failure")
		}
	})

	t.Run("returns not found for unknown schedule", func(t *testing.T) {
		service, _, _ := createScheduleTestService()
		ctx := context.Background()

		if err := service.DeleteSchedule(ctx, DeleteScheduleCommand{ScheduleID: "SCH-MISSING"}); err == nil {
			t.Fatal("DeleteSchedule() should return error for unknown schedule")
		}
	})
}

func TestScheduleApplicationService_IsEmployeeAssignedForDate(t *testing.T) {
	service, repo, _ := createScheduleTestService()
	ctx := context.Background()

	schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
		{ItemID: "ITM-1", Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
	})
	repo.AddSchedule(schedule)

	assigned, err := service.IsEmployeeAssignedForDate(ctx, CheckAssignmentQuery{EmployeeID: "EMP-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("IsEmployeeAssignedForDate() error = %v", err)
	}
	if !assigned {
		t.Error("IsEmployeeAssignedForDate() = false, want true")
	}

	assigned, err = service.IsEmployeeAssignedForDate(ctx, CheckAssignmentQuery{
		EmployeeID:    "EMP-1",
		Date:          "2026-03-02",
		ExcludeItemID: "ITM-1",
	})
	if err != nil {
		t.Fatalf("IsEmployeeAssignedForDate() error = %v", err)
	}
	if assigned {
		t.Error("IsEmployeeAssignedForDate() = true when excluding the item under edit, want false")
	}
}

func TestScheduleApplicationService_ListSchedules(t *testing.T) {
	t.Run("filters by date when given", func(t *testing.T) {
		service, repo, _ := createScheduleTestService()
		ctx := context.Background()

		monday, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{ItemID: "ITM-1", Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		tuesday, _ := domain.NewSchedule("2026-03-03", []domain.ScheduleItem{
			{ItemID: "ITM-2", Task: domain.TaskGrading, EmployeeIDs: []string{"EMP-2"}},
		})
		repo.AddSchedule(monday)
		repo.AddSchedule(tuesday)

		schedules, err := service.ListSchedules(ctx, ListSchedulesQuery{Date: "2026-03-02"})
		if err != nil {
			t.Fatalf("ListSchedules() error = %v", err)
		}
		if len(schedules) != 1 || schedules[0].Date != "2026-03-02" {
			t.Fatalf("ListSchedules() = %+v, want only the 2026-03-02 schedule", schedules)
		}
	})

	t.Run("lists all without a date filter", func(t *testing.T) {
		service, repo, _ := createScheduleTestService()
		ctx := context.Background()

		first, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{ItemID: "ITM-1", Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		second, _ := domain.NewSchedule("2026-03-03", []domain.ScheduleItem{
			{ItemID: "ITM-2", Task: domain.TaskGrading, EmployeeIDs: []string{"EMP-2"}},
		})
		repo.AddSchedule(first)
		repo.AddSchedule(second)

		schedules, err := service.ListSchedules(ctx, ListSchedulesQuery{})
		if err != nil {
			t.Fatalf("ListSchedules() error = %v", err)
		}
		if len(schedules) != 2 {
			t.Fatalf("ListSchedules() returned %d schedules, want 2", len(schedules))
		}
	})
}
