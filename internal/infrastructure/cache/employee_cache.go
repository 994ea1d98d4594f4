package cache

import (
	"context"
	"sync"

	"github.com/agriwork-platform/workforce-service/internal/application"
	"github.com/agriwork-platform/workforce-service/internal/domain"
)

// CachedEmployeeRepository is a read-through decorator over the employee
// directory. Lookups by id are served from memory once warm; writes and
// deletes invalidate the affected entry.
type CachedEmployeeRepository struct {
	inner application.EmployeeRepository

	mu        sync.RWMutex
	employees map[string]*domain.Employee
}

func NewCachedEmployeeRepository(inner application.EmployeeRepository) *CachedEmployeeRepository {
	return &CachedEmployeeRepository{
		inner:     inner,
		employees: make(map[string]*domain.Employee),
	}
}

func (c *CachedEmployeeRepository) Save(ctx context.Context, employee *domain.Employee) error {
	if err := c.inner.Save(ctx, employee); err != nil {
		return err
	}

	c.mu.Lock()
	c.employees[employee.EmployeeID] = employee
	c.mu.Unlock()
	return nil
}

func (c *CachedEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	c.mu.RLock()
	cached, ok := c.employees[employeeID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	employee, err := c.inner.FindByEmployeeID(ctx, employeeID)
	if err != nil || employee == nil {
		return employee, err
	}

	c.mu.Lock()
	c.employees[employeeID] = employee
	c.mu.Unlock()
	return employee, nil
}

func (c *CachedEmployeeRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Employee, error) {
	return c.inner.FindAll(ctx, limit, offset)
}

func (c *CachedEmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	if err := c.inner.Delete(ctx, employeeID); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.employees, employeeID)
	c.mu.Unlock()
	return nil
}
