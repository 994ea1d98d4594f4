package domain

import (
	"errors"
	"strings"
	"time"
)

// User errors
var (
	ErrUserEmailRequired = errors.New("user email is required")
	ErrInvalidUserRole   = errors.New("invalid user role")
)

// UserRole is an explicit role attribute. Roles are stored, never derived
// from the shape of the email address.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// User binds an authenticated email to its role
type User struct {
	Email     string    `bson:"email"`
	Role      UserRole  `bson:"role"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewUser creates a user with the given role
func NewUser(email string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrUserEmailRequired
	}
	if !role.IsValid() {
		return nil, ErrInvalidUserRole
	}

	now := time.Now()
	return &User{
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetRole updates the user's role
func (u *User) SetRole(role UserRole) error {
	if !role.IsValid() {
		return ErrInvalidUserRole
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
