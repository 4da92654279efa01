package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ClientServiceImpl implements the ClientService interface.
type ClientServiceImpl struct {
	clientRepo secondary.ClientRepository
}

// NewClientService creates a new ClientService with injected dependencies.
func NewClientService(clientRepo secondary.ClientRepository) *ClientServiceImpl {
	return &ClientServiceImpl{
		clientRepo: clientRepo,
	}
}

// CreateClient creates a new client in the actor's tenant.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req primary.CreateClientRequest) (*primary.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, Validationf("client name is required")
	}

	record := &secondary.ClientRecord{
		ID:           uuid.NewString(),
		TenantID:     ctxutil.ActorFromContext(ctx).TenantID,
		Name:         strings.TrimSpace(req.Name),
		Industry:     req.Industry,
		Country:      req.Country,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Status:       "active",
	}

	if err := s.clientRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	// Fetch created client for the DB-side timestamps
	created, err := s.clientRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created client: %w", err)
	}

	return s.recordToClient(created), nil
}

// GetClient retrieves a client by ID.
func (s *ClientServiceImpl) GetClient(ctx context.Context, clientID string) (*primary.Client, error) {
	record, err := s.getScoped(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.recordToClient(record), nil
}

// ListClients lists the tenant's clients with optional filters.
func (s *ClientServiceImpl) ListClients(ctx context.Context, filters primary.ClientFilters) ([]*primary.Client, error) {
	records, err := s.clientRepo.List(ctx, secondary.ClientFilters{
		TenantID: ctxutil.ActorFromContext(ctx).TenantID,
		Status:   filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*primary.Client, len(records))
	for i, r := range records {
		clients[i] = s.recordToClient(r)
	}
	return clients, nil
}

// UpdateClient updates a client's editable fields.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req primary.UpdateClientRequest) (*primary.Client, error) {
	record, err := s.getScoped(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, Validationf("client name cannot be empty")
		}
		record.Name = strings.TrimSpace(*req.Name)
	}
	if req.Industry != nil {
		record.Industry = *req.Industry
	}
	if req.Country != nil {
		record.Country = *req.Country
	}
	if req.ContactName != nil {
		record.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		record.ContactEmail = *req.ContactEmail
	}

	if err := s.clientRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	updated, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated client: %w", err)
	}
	return s.recordToClient(updated), nil
}

// ArchiveClient marks a client archived.
func (s *ClientServiceImpl) ArchiveClient(ctx context.Context, clientID string) (*primary.Client, error) {
	record, err := s.getScoped(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if record.Status != "archived" {
		record.Status = "archived"
		if err := s.clientRepo.Update(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to archive client: %w", err)
		}
	}

	archived, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch archived client: %w", err)
	}
	return s.recordToClient(archived), nil
}

// DeleteClient removes a client with no projects. Clients with
// projects are protected; callers archive instead.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, clientID string) error {
	if _, err := s.getScoped(ctx, clientID); err != nil {
		return err
	}

	count, err := s.clientRepo.CountProjects(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to count client projects: %w", err)
	}
	if count > 0 {
		return Validationf("client %s has %d project(s); archive the client instead", clientID, count)
	}

	return s.clientRepo.Delete(ctx, clientID)
}

// Helper methods

// getScoped loads a client and hides it from foreign tenants.
func (s *ClientServiceImpl) getScoped(ctx context.Context, clientID string) (*secondary.ClientRecord, error) {
	record, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !inTenant(ctx, record.TenantID) {
		return nil, NotFoundf("client %s not found", clientID)
	}
	return record, nil
}

func (s *ClientServiceImpl) recordToClient(r *secondary.ClientRecord) *primary.Client {
	return &primary.Client{
		ID:           r.ID,
		Name:         r.Name,
		Industry:     r.Industry,
		Country:      r.Country,
		ContactName:  r.ContactName,
		ContactEmail: r.ContactEmail,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Ensure ClientServiceImpl implements the interface
var _ primary.ClientService = (*ClientServiceImpl)(nil)
