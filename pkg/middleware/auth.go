package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/agriwork-platform/workforce-service/pkg/errors"
)

// Role is an explicit authorization role resolved from the user store. Role
// derivation from email contents is deliberately not supported.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// RoleResolver resolves the authorization role for an authenticated email
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (Role, error)
}

// AuthConfig holds configuration for the identity middleware
type AuthConfig struct {
	// Resolver looks up the caller's role. Required.
	Resolver RoleResolver

	// Required rejects requests without an identity header when true.
	Required bool
}

// Identity middleware extracts the session user's email from headers and
// resolves their role through the authorization store. Sessions themselves
// are established by the external identity service; this middleware only
// attaches identity and role to the request context.
func Identity(config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader(HeaderUserEmail)

		if email == "" {
			if config.Required {
				AbortWithAppError(c, errors.ErrUnauthorized("user identity is required"))
				return
			}
			c.Next()
			return
		}

		role, err := config.Resolver.ResolveRole(c.Request.Context(), email)
		if err != nil {
			AbortWithAppError(c, errors.ErrServiceUnavailable("authorization store"))
			return
		}
		if !role.IsValid() {
			// Unknown users get the least-privileged role
			role = RoleUser
		}

		c.Set(ContextKeyUserEmail, email)
		c.Set(ContextKeyUserRole, string(role))

		c.Next()
	}
}

// RequireAdmin aborts requests whose resolved role is not admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != RoleAdmin {
			AbortWithAppError(c, errors.ErrForbidden("administrator role required"))
			return
		}
		c.Next()
	}
}

// GetUserEmail extracts the authenticated user's email from context
func GetUserEmail(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyUserEmail); exists {
		if email, ok := val.(string); ok {
			return email
		}
	}
	return ""
}

// GetUserRole extracts the resolved role from context
func GetUserRole(c *gin.Context) Role {
	if val, exists := c.Get(ContextKeyUserRole); exists {
		if role, ok := val.(string); ok {
			return Role(role)
		}
	}
	return ""
}
