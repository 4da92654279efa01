package primary

import (
	"context"
	"time"
)

// UserService defines the primary port for user operations and token
// resolution.
type UserService interface {
	// CreateUser creates a new user in the actor's tenant. Admin only.
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*User, error)

	// ListUsers lists the tenant's users.
	ListUsers(ctx context.Context, filters UserFilters) ([]*User, error)

	// DeactivateUser disables a user's access. Admin only.
	DeactivateUser(ctx context.Context, userID string) error

	// Authenticate resolves a bearer token to its active user. Used by
	// transport middleware, not by handlers.
	Authenticate(ctx context.Context, token string) (*User, error)
}

// CreateUserRequest contains parameters for creating a user.
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// User represents a user entity at the port boundary. APIToken is
// only populated on creation responses.
type User struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"-"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	APIToken  string    `json:"api_token,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFilters contains filter options for listing users.
type UserFilters struct {
	Role       string
	ActiveOnly bool
}
