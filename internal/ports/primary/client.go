package primary

import (
	"context"
	"time"
)

// ClientService defines the primary port for client operations.
type ClientService interface {
	// CreateClient creates a new client in the actor's tenant.
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)

	// GetClient retrieves a client by ID.
	GetClient(ctx context.Context, clientID string) (*Client, error)

	// ListClients lists the tenant's clients with optional filters.
	ListClients(ctx context.Context, filters ClientFilters) ([]*Client, error)

	// UpdateClient updates a client's editable fields.
	UpdateClient(ctx context.Context, req UpdateClientRequest) (*Client, error)

	// ArchiveClient marks a client archived.
	ArchiveClient(ctx context.Context, clientID string) (*Client, error)

	// DeleteClient removes a client with no projects.
	DeleteClient(ctx context.Context, clientID string) error
}

// CreateClientRequest contains parameters for creating a client.
type CreateClientRequest struct {
	Name         string `json:"name"`
	Industry     string `json:"industry,omitempty"`
	Country      string `json:"country,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// UpdateClientRequest contains parameters for updating a client.
// Nil fields are left untouched.
type UpdateClientRequest struct {
	ClientID     string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	Country      *string `json:"country,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
}

// Client represents a client entity at the port boundary.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry,omitempty"`
	Country      string    `json:"country,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ClientFilters contains filter options for listing clients.
type ClientFilters struct {
	Status string
}
