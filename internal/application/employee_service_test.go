package application

import (
	"context"
	"testing"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

func createEmployeeTestService() (*EmployeeApplicationService, *MockEmployeeRepository, *MockScheduleRepository, *MockWorkEntryRepository) {
	repo := NewMockEmployeeRepository()
	scheduleRepo := NewMockScheduleRepository()
	entryRepo := NewMockWorkEntryRepository()
	service := NewEmployeeApplicationService(repo, scheduleRepo, entryRepo, testLogger())
	return service, repo, scheduleRepo, entryRepo
}

func TestEmployeeApplicationService_CreateEmployee(t *testing.T) {
	t.Run("creates employee successfully", func(t *testing.T) {
		service, _, _, _ := createEmployeeTestService()
		ctx := context.Background()

		cmd := CreateEmployeeCommand{
			EmployeeID: "EMP-1",
			Name:       "Zola",
			Surname:    "Moyo",
			NationalID: "63-123456A00",
			Contact:    "+263771234567",
		}

		dto, err := service.CreateEmployee(ctx, cmd)
		if err != nil {
			t.Fatalf("CreateEmployee() error = %v", err)
		}
		if dto.FullName != "Zola Moyo" {
			t.Errorf("FullName = %v, want Zola Moyo", dto.FullName)
		}
	})

	t.Run("rejects duplicate employee id", func(t *testing.T) {
		service, repo, _, _ := createEmployeeTestService()
		ctx := context.Background()

		existing, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
		repo.AddEmployee(existing)

		cmd := CreateEmployeeCommand{EmployeeID: "EMP-1", Name: "Other", Surname: "Person"}
		if _, err := service.CreateEmployee(ctx, cmd); err == nil {
			t.Fatal("CreateEmployee() should reject a duplicate id")
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		service, _, _, _ := createEmployeeTestService()
		ctx := context.Background()

		cmd := CreateEmployeeCommand{EmployeeID: "EMP-1"}
		if _, err := service.CreateEmployee(ctx, cmd); err == nil {
			t.Fatal("CreateEmployee() should reject a missing name")
		}
	})
}

func TestEmployeeApplicationService_DeleteEmployee(t *testing.T) {
	t.Run("deletes unreferenced employee", func(t *testing.T) {
		service, repo, _, _ := createEmployeeTestService()
		ctx := context.Background()

		employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
		repo.AddEmployee(employee)

		if err := service.DeleteEmployee(ctx, DeleteEmployeeCommand{EmployeeID: "EMP-1"}); err != nil {
			t.Fatalf("DeleteEmployee() error = %v", err)
		}
		if got, _ := repo.FindByEmployeeID(ctx, "EMP-1"); got != nil {
			t.Error("employee still present after delete")
		}
	})

	t.Run("refuses while a schedule references the employee", func(t *testing.T) {
		service, repo, scheduleRepo, _ := createEmployeeTestService()
		ctx := context.Background()

		employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
		repo.AddEmployee(employee)

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		scheduleRepo.AddSchedule(schedule)

		if err := service.DeleteEmployee(ctx, DeleteEmployeeCommand{EmployeeID: "EMP-1"}); err == nil {
			t.Fatal("DeleteEmployee() should refuse while referenced by a schedule")
		}
		if got, _ := repo.FindByEmployeeID(ctx, "EMP-1"); got == nil {
			t.Error("employee removed despite reference")
		}
	})

	t.Run("refuses while work entries reference the employee", func(t *testing.T) {
		service, repo, _, entryRepo := createEmployeeTestService()
		ctx := context.Background()

		employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
		repo.AddEmployee(employee)

		entry, _ := domain.NewWorkEntry("SCH-1", "ITM-1", "EMP-1", 5, "", nil, 0)
		entryRepo.AddEntry(entry)

		if err := service.DeleteEmployee(ctx, DeleteEmployeeCommand{EmployeeID: "EMP-1"}); err == nil {
			t.Fatal("DeleteEmployee() should refuse while referenced by entries")
		}
	})

	t.Run("returns not found for unknown employee", func(t *testing.T) {
		service, _, _, _ := createEmployeeTestService()
		ctx := context.Background()

		if err := service.DeleteEmployee(ctx, DeleteEmployeeCommand{EmployeeID: "EMP-MISSING"}); err == nil {
			t.Fatal("DeleteEmployee() should return error for unknown employee")
		}
	})
}

func TestEmployeeApplicationService_UpdateEmployee(t *testing.T) {
	service, repo, _, _ := createEmployeeTestService()
	ctx := context.Background()

	employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
	repo.AddEmployee(employee)

	cmd := UpdateEmployeeCommand{
		EmployeeID: "EMP-1",
		Name:       "Zola",
		Surname:    "Ncube",
		Contact:    "+263779999999",
	}

	dto, err := service.UpdateEmployee(ctx, cmd)
	if err != nil {
		t.Fatalf("UpdateEmployee() error = %v", err)
	}
	if dto.Surname != "Ncube" {
		t.Errorf("Surname = %v, want Ncube", dto.Surname)
	}
	if dto.Contact != "+263779999999" {
		t.Errorf("Contact = %v, want updated contact", dto.Contact)
	}
}
