package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
	"github.com/agriwork-platform/workforce-service/pkg/logging"

	"github.com/agriwork-platform/workforce-service/internal/application"
)

type mockScheduleService struct {
	createFn          func(ctx context.Context, cmd application.CreateScheduleCommand) (*application.ScheduleDTO, error)
	getFn             func(ctx context.Context, query application.GetScheduleQuery) (*application.ScheduleDTO, error)
	listFn            func(ctx context.Context, query application.ListSchedulesQuery) ([]application.ScheduleDTO, error)
	updateFn          func(ctx context.Context, cmd application.UpdateScheduleCommand) (*application.ScheduleDTO, error)
	deleteFn          func(ctx context.Context, cmd application.DeleteScheduleCommand) error
	byEmployeeFn      func(ctx context.Context, query application.GetSchedulesByEmployeeQuery) ([]application.ScheduleDTO, error)
	checkAssignmentFn func(ctx context.Context, query application.CheckAssignmentQuery) (bool, error)
}

func (m *mockScheduleService) CreateSchedule(ctx context.Context, cmd application.CreateScheduleCommand) (*application.ScheduleDTO, error) {
	if m.createFn == nil {
		panic("CreateSchedule not implemented")
	}
	return m.createFn(ctx, cmd)
}

func (m *mockScheduleService) GetSchedule(ctx context.Context, query application.GetScheduleQuery) (*application.ScheduleDTO, error) {
	if m.getFn == nil {
		panic("GetSchedule not implemented")
	}
	return m.getFn(ctx, query)
}

func (m *mockScheduleService) ListSchedules(ctx context.Context, query application.ListSchedulesQuery) ([]application.ScheduleDTO, error) {
	if m.listFn == nil {
		panic("ListSchedules not implemented")
	}
	return m.listFn(ctx, query)
}

func (m *mockScheduleService) UpdateSchedule(ctx context.Context, cmd application.UpdateScheduleCommand) (*application.ScheduleDTO, error) {
	if m.updateFn == nil {
		panic("UpdateSchedule not implemented")
	}
	return m.updateFn(ctx, cmd)
}

func (m *mockScheduleService) DeleteSchedule(ctx context.Context, cmd application.DeleteScheduleCommand) error {
	if m.deleteFn == nil {
		panic("DeleteSchedule not implemented")
	}
	return m.deleteFn(ctx, cmd)
}

func (m *mockScheduleService) GetSchedulesByEmployee(ctx context.Context, query application.GetSchedulesByEmployeeQuery) ([]application.ScheduleDTO, error) {
	if m.byEmployeeFn == nil {
		panic("GetSchedulesByEmployee not implemented")
	}
	return m.byEmployeeFn(ctx, query)
}

func (m *mockScheduleService) IsEmployeeAssignedForDate(ctx context.Context, query application.CheckAssignmentQuery) (bool, error) {
	if m.checkAssignmentFn == nil {
		panic("IsEmployeeAssignedForDate not implemented")
	}
	return m.checkAssignmentFn(ctx, query)
}

func newScheduleTestRouter(service ScheduleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logging.New(logging.DefaultConfig("test"))
	handlers := NewScheduleHandlers(service, logger)
	handlers.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestScheduleHandlers_CreateSchedule(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockScheduleService{
			createFn: func(ctx context.Context, cmd application.CreateScheduleCommand) (*application.ScheduleDTO, error) {
				if cmd.Date != "2026-03-02" || len(cmd.Items) != 1 {
					t.Fatalf("unexpected command: %+v", cmd)
				}
				return &application.ScheduleDTO{ScheduleID: "SCH-STRI-000001-001", Date: cmd.Date}, nil
			},
		}
		router := newScheduleTestRouter(service)
		body := `{"date":"2026-03-02","items":[{"task":"Stripping","requiredCount":2,"employeeIds":["EMP-1","EMP-2"]}]}`
		rec := performRequest(router, http.MethodPost, "/api/v1/schedules", body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"scheduleId":"SCH-STRI-000001-001"`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("double booked employee", func(t *testing.T) {
		service := &mockScheduleService{
			createFn: func(ctx context.Context, cmd application.CreateScheduleCommand) (*application.ScheduleDTO, error) {
				return nil, errors.ErrConflict("employee is already assigned on this date")
			},
		}
		router := newScheduleTestRouter(service)
		body := `{"date":"2026-03-02","items":[{"task":"Stripping","employeeIds":["EMP-1"]}]}`
		rec := performRequest(router, http.MethodPost, "/api/v1/schedules", body)

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		service := &mockScheduleService{}
		router := newScheduleTestRouter(service)
		rec := performRequest(router, http.MethodPost, "/api/v1/schedules", `{"items":[{"task":"Stripping"}]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestScheduleHandlers_UpdateSchedule(t *testing.T) {
	service := &mockScheduleService{
		updateFn: func(ctx context.Context, cmd application.UpdateScheduleCommand) (*application.ScheduleDTO, error) {
			if cmd.ScheduleID != "SCH-1" {
				t.Fatalf("ScheduleID = %s", cmd.ScheduleID)
			}
			return &application.ScheduleDTO{ScheduleID: cmd.ScheduleID, Date: cmd.Date}, nil
		},
	}
	router := newScheduleTestRouter(service)
	body := `{"date":"2026-03-02","items":[{"task":"Machine","employeeIds":["EMP-3"]}]}`
	rec := performRequest(router, http.MethodPut, "/api/v1/schedules/SCH-1", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestScheduleHandlers_DeleteSchedule(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &mockScheduleService{
			deleteFn: func(ctx context.Context, cmd application.DeleteScheduleCommand) error {
				if cmd.ScheduleID != "SCH-1" {
					t.Fatalf("ScheduleID = %s", cmd.ScheduleID)
				}
				return nil
			},
		}
		router := newScheduleTestRouter(service)
		rec := performRequest(router, http.MethodDelete, "/api/v1/schedules/SCH-1", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		service := &mockScheduleService{
			deleteFn: func(ctx context.Context, cmd application.DeleteScheduleCommand) error {
				return errors.ErrNotFound("schedule")
			},
		}
		router := newScheduleTestRouter(service)
		rec := performRequest(router, http.MethodDelete, "/api/v1/schedules/SCH-404", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestScheduleHandlers_CheckAssignment(t *testing.T) {
	t.Run("passes the item exclusion through", func(t *testing.T) {
		service := &mockScheduleService{
			checkAssignmentFn: func(ctx context.Context, query application.CheckAssignmentQuery) (bool, error) {
				if query.ExcludeItemID != "ITM-1" {
					t.Fatalf("ExcludeItemID = %s, want ITM-1", query.ExcludeItemID)
				}
				return false, nil
			},
		}
		router := newScheduleTestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/schedules/check-assignment?employeeId=EMP-1&date=2026-03-02&itemId=ITM-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"assigned":false`) {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("missing parameters", func(t *testing.T) {
		service := &mockScheduleService{}
		router := newScheduleTestRouter(service)
		rec := performRequest(router, http.MethodGet, "/api/v1/schedules/check-assignment?employeeId=EMP-1", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestScheduleHandlers_GetSchedulesByEmployee(t *testing.T) {
	service := &mockScheduleService{
		byEmployeeFn: func(ctx context.Context, query application.GetSchedulesByEmployeeQuery) ([]application.ScheduleDTO, error) {
			if query.EmployeeID != "EMP-1" {
				t.Fatalf("EmployeeID = %s", query.EmployeeID)
			}
			return []application.ScheduleDTO{{ScheduleID: "SCH-1"}}, nil
		},
	}
	router := newScheduleTestRouter(service)
	rec := performRequest(router, http.MethodGet, "/api/v1/schedules/employee/EMP-1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
