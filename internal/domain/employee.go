package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee errors
var (
	ErrEmployeeNameRequired = errors.New("employee name is required")
	ErrEmployeeIDRequired   = errors.New("employee id is required")
	ErrEmployeeReferenced   = errors.New("employee is referenced by schedules or work entries")
)

// NextOfKin holds emergency contact details for an employee
type NextOfKin struct {
	Name    string `bson:"name" json:"name"`
	Contact string `bson:"contact" json:"contact"`
}

// Employee represents a worker in the directory
type Employee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID   string             `bson:"employeeId"`
	Name         string             `bson:"name"`
	Surname      string             `bson:"surname"`
	NationalID   string             `bson:"nationalId"`
	Contact      string             `bson:"contact"`
	Address      string             `bson:"address"`
	Gender       string             `bson:"gender"`
	NextOfKin    NextOfKin          `bson:"nextOfKin"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	DomainEvents []DomainEvent      `bson:"-"`
}

// NewEmployee creates a new Employee record
func NewEmployee(employeeID, name, surname, nationalID, contact, address, gender string, nextOfKin NextOfKin) (*Employee, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrEmployeeIDRequired
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(surname) == "" {
		return nil, ErrEmployeeNameRequired
	}

	now := time.Now()
	employee := &Employee{
		EmployeeID:   employeeID,
		Name:         name,
		Surname:      surname,
		NationalID:   nationalID,
		Contact:      contact,
		Address:      address,
		Gender:       gender,
		NextOfKin:    nextOfKin,
		CreatedAt:    now,
		UpdatedAt:    now,
		DomainEvents: make([]DomainEvent, 0),
	}

	employee.AddDomainEvent(&EmployeeCreatedEvent{
		EmployeeID: employeeID,
		FullName:   employee.FullName(),
		CreatedAt:  now,
	})

	return employee, nil
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.Name + " " + e.Surname)
}

// Update replaces the mutable fields of the employee record
func (e *Employee) Update(name, surname, nationalID, contact, address, gender string, nextOfKin NextOfKin) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(surname) == "" {
		return ErrEmployeeNameRequired
	}

	e.Name = name
	e.Surname = surname
	e.NationalID = nationalID
	e.Contact = contact
	e.Address = address
	e.Gender = gender
	e.NextOfKin = nextOfKin
	e.UpdatedAt = time.Now()

	e.AddDomainEvent(&EmployeeUpdatedEvent{
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName(),
		UpdatedAt:  e.UpdatedAt,
	})

	return nil
}

// AddDomainEvent adds a domain event
func (e *Employee) AddDomainEvent(event DomainEvent) {
	e.DomainEvents = append(e.DomainEvents, event)
}

// ClearDomainEvents clears all domain events
func (e *Employee) ClearDomainEvents() {
	e.DomainEvents = make([]DomainEvent, 0)
}

// GetDomainEvents returns all domain events
func (e *Employee) GetDomainEvents() []DomainEvent {
	return e.DomainEvents
}

// Employee Domain Events

// EmployeeCreatedEvent is emitted when an employee is created
type EmployeeCreatedEvent struct {
	EmployeeID string    `json:"employeeId"`
	FullName   string    `json:"fullName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (e *EmployeeCreatedEvent) EventType() string     { return "employee.created" }
func (e *EmployeeCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// EmployeeUpdatedEvent is emitted when an employee is updated
type EmployeeUpdatedEvent struct {
	EmployeeID string    `json:"employeeId"`
	FullName   string    `json:"fullName"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e *EmployeeUpdatedEvent) EventType() string     { return "employee.updated" }
func (e *EmployeeUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// EmployeeDeletedEvent is emitted when an employee is deleted
type EmployeeDeletedEvent struct {
	EmployeeID string    `json:"employeeId"`
	DeletedAt  time.Time `json:"deletedAt"`
}

func (e *EmployeeDeletedEvent) EventType() string     { return "employee.deleted" }
func (e *EmployeeDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
