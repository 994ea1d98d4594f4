package application

import (
	"context"
	"testing"

	"github.com/agriwork-platform/workforce-service/internal/domain"
)

func createPayrollTestService() (*PayrollApplicationService, *MockScheduleRepository, *MockWorkEntryRepository, *MockEmployeeRepository) {
	scheduleRepo := NewMockScheduleRepository()
	entryRepo := NewMockWorkEntryRepository()
	employeeRepo := NewMockEmployeeRepository()
	service := NewPayrollApplicationService(scheduleRepo, entryRepo, employeeRepo, testLogger(), nil)
	return service, scheduleRepo, entryRepo, employeeRepo
}

func TestPayrollApplicationService_GeneratePayroll(t *testing.T) {
	t.Run("prices entries against caller rates", func(t *testing.T) {
		service, scheduleRepo, entryRepo, employeeRepo := createPayrollTestService()
		ctx := context.Background()

		employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
		employeeRepo.AddEmployee(employee)

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{ItemID: "ITM-1", Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		scheduleRepo.AddSchedule(schedule)

		first, _ := domain.NewWorkEntry(schedule.ScheduleID, "ITM-1", "EMP-1", 10, "", nil, 0)
		second, _ := domain.NewWorkEntry(schedule.ScheduleID, "ITM-1", "EMP-1", 5, "", nil, 0)
		entryRepo.AddEntry(first)
		entryRepo.AddEntry(second)

		query := GeneratePayrollQuery{
			StartDate: "2026-03-01",
			EndDate:   "2026-03-31",
			Rates:     map[string]float64{"Stripping": 2.5},
		}

		report, err := service.GeneratePayroll(ctx, query)
		if err != nil {
			t.Fatalf("GeneratePayroll() error = %v", err)
		}
		if len(report.Employees) != 1 {
			t.Fatalf("Employees = %d, want 1", len(report.Employees))
		}
		if report.Employees[0].FullName != "Zola Moyo" {
			t.Errorf("FullName = %v, want Zola Moyo", report.Employees[0].FullName)
		}
		if report.Employees[0].TotalAmount != 37.5 {
			t.Errorf("TotalAmount = %v, want 37.5", report.Employees[0].TotalAmount)
		}
	})

	t.Run("tasks without a rate price at zero", func(t *testing.T) {
		service, scheduleRepo, entryRepo, employeeRepo := createPayrollTestService()
		ctx := context.Background()

		employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
		employeeRepo.AddEmployee(employee)

		schedule, _ := domain.NewSchedule("2026-03-02", []domain.ScheduleItem{
			{ItemID: "ITM-1", Task: domain.TaskGrading, EmployeeIDs: []string{"EMP-1"}},
		})
		scheduleRepo.AddSchedule(schedule)

		entry, _ := domain.NewWorkEntry(schedule.ScheduleID, "ITM-1", "EMP-1", 12, "", nil, 0)
		entryRepo.AddEntry(entry)

		report, err := service.GeneratePayroll(ctx, GeneratePayrollQuery{
			StartDate: "2026-03-01",
			EndDate:   "2026-03-31",
		})
		if err != nil {
			t.Fatalf("GeneratePayroll() error = %v", err)
		}
		if len(report.Employees) != 1 {
			t.Fatalf("Employees = %d, want 1", len(report.Employees))
		}
		if report.Employees[0].TotalAmount != 0 {
			t.Errorf("TotalAmount = %v, want 0 for unrated task", report.Employees[0].TotalAmount)
		}
	})

	t.Run("excludes schedules outside the range", func(t *testing.T) {
		service, scheduleRepo, entryRepo, employeeRepo := createPayrollTestService()
		ctx := context.Background()

		employee, _ := domain.NewEmployee("EMP-1", "Zola", "Moyo", "", "", "", "", domain.NextOfKin{})
		employeeRepo.AddEmployee(employee)

		schedule, _ := domain.NewSchedule("2026-04-10", []domain.ScheduleItem{
			{ItemID: "ITM-1", Task: domain.TaskStripping, EmployeeIDs: []string{"EMP-1"}},
		})
		scheduleRepo.AddSchedule(schedule)

		entry, _ := domain.NewWorkEntry(schedule.ScheduleID, "ITM-1", "EMP-1", 10, "", nil, 0)
		entryRepo.AddEntry(entry)

		report, err := service.GeneratePayroll(ctx, GeneratePayrollQuery{
			StartDate: "2026-03-01",
			EndDate:   "2026-03-31",
			Rates:     map[string]float64{"Stripping": 2.5},
		})
		if err != nil {
			t.Fatalf("GeneratePayroll() error = %v", err)
		}
		if len(report.Employees) != 0 {
			t.Errorf("Employees = %d, want 0 outside the range", len(report.Employees))
		}
	})

	t.Run("rejects missing dates", func(t *testing.T) {
		service, _, _, _ := createPayrollTestService()
		ctx := context.Background()

		if _, err := service.GeneratePayroll(ctx, GeneratePayrollQuery{StartDate: "2026-03-01"}); err == nil {
			t.Fatal("GeneratePayroll() should reject a missing end date")
		}
		if _, err := service.GeneratePayroll(ctx, GeneratePayrollQuery{EndDate: "2026-03-31"}); err == nil {
			t.Fatal("GeneratePayroll() should reject a missing start date")
		}
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		service, _, _, _ := createPayrollTestService()
		ctx := context.Background()

		query := GeneratePayrollQuery{StartDate: "2026-03-31", EndDate: "2026-03-01"}
		if _, err := service.GeneratePayroll(ctx, query); err == nil {
			t.Fatal("GeneratePayroll() should reject startDate after endDate")
		}
	})
}
