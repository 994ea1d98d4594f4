package cache

import (
	"context"
	"sync"

	"github.com/agriwork-platform/workforce-service/internal/application"
	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// CachedScheduleRepository is a read-through decorator over the schedule
// store. Single-schedule reads are served from memory once warm; every write
// or delete invalidates the affected entry. List queries always hit the
// backing store so date and employee filters stay authoritative.
type CachedScheduleRepository struct {
	inner application.ScheduleRepository

	mu        sync.RWMutex
	schedules map[string]*domain.Schedule
}

func NewCachedScheduleRepository(inner application.ScheduleRepository) *CachedScheduleRepository {
	return &CachedScheduleRepository{
		inner:     inner,
		schedules: make(map[string]*domain.Schedule),
	}
}

func (c *CachedScheduleRepository) Save(ctx context.Context, schedule *domain.Schedule) error {
	if err := c.inner.Save(ctx, schedule); err != nil {
		return err
	}

	c.mu.Lock()
	c.schedules[schedule.ScheduleID] = schedule
	c.mu.Unlock()
	return nil
}

func (c *CachedScheduleRepository) FindByScheduleID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	c.mu.RLock()
	cached, ok := c.schedules[scheduleID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	schedule, err := c.inner.FindByScheduleID(ctx, scheduleID)
	if err != nil || schedule == nil {
		return schedule, err
	}

	c.mu.Lock()
	c.schedules[scheduleID] = schedule
	c.mu.Unlock()
	return schedule, nil
}

func (c *CachedScheduleRepository) FindByDate(ctx context.Context, date string) ([]*domain.Schedule, error) {
	return c.inner.FindByDate(ctx, date)
}

func (c *CachedScheduleRepository) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Schedule, error) {
	return c.inner.FindByDateRange(ctx, startDate, endDate)
}

func (c *CachedScheduleRepository) FindByEmployeeID(ctx context.Context, employeeID string) ([]*domain.Schedule, error) {
	return c.inner.FindByEmployeeID(ctx, employeeID)
}

func (c *CachedScheduleRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Schedule, error) {
	return c.inner.FindAll(ctx, limit, offset)
}

func (c *CachedScheduleRepository) Delete(ctx context.Context, schedule *domain.Schedule) error {
	if err := c.inner.Delete(ctx, schedule); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.schedules, schedule.ScheduleID)
	c.mu.Unlock()
	return nil
}
