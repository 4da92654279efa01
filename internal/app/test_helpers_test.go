package app

import (
	"context"

	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/secondary"
)

// actorContext returns a context carrying an acting user. Most service
// paths scope reads to the actor's tenant.
func actorContext(id, tenantID, role string) context.Context {
	return ctxutil.WithActor(context.Background(), ctxutil.Actor{ID: id, TenantID: tenantID, Role: role})
}

// Ensure shared mocks implement their interfaces
var (
	_ secondary.ProjectRepository = (*mockProjectRepository)(nil)
	_ secondary.UserRepository    = (*mockUserRepository)(nil)
)

// mockProjectRepository implements secondary.ProjectRepository for testing.
type mockProjectRepository struct {
	projects        map[string]*secondary.ProjectRecord
	createErr       error
	getErr          error
	updateErr       error
	updateStatusErr error
	deleteErr       error
	listErr         error
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{
		projects: make(map[string]*secondary.ProjectRecord),
	}
}

func (m *mockProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, NotFoundf("project %s not found", id)
}

func (m *mockProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.projects[project.ID]; !ok {
		return NotFoundf("project %s not found", project.ID)
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	p, ok := m.projects[id]
	if !ok {
		return NotFoundf("project %s not found", id)
	}
	p.Status = status
	return nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.projects[id]; !ok {
		return NotFoundf("project %s not found", id)
	}
	delete(m.projects, id)
	return nil
}

func (m *mockProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ProjectRecord
	for _, p := range m.projects {
		if filters.TenantID != "" && p.TenantID != filters.TenantID {
			continue
		}
		if filters.ClientID != "" && p.ClientID != filters.ClientID {
			continue
		}
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		if filters.DeliverableType != "" && p.DeliverableType != filters.DeliverableType {
			continue
		}
		if filters.FiscalYear != 0 && p.FiscalYear != filters.FiscalYear {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// mockUserRepository implements secondary.UserRepository for testing.
type mockUserRepository struct {
	users     map[string]*secondary.UserRecord
	createErr error
	getErr    error
	updateErr error
	listErr   error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*secondary.UserRecord),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, NotFoundf("user %s not found", id)
}

func (m *mockUserRepository) GetByToken(ctx context.Context, token string) (*secondary.UserRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.APIToken == token && u.Active {
			return u, nil
		}
	}
	return nil, NotFoundf("no active user for token")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, NotFoundf("user with email %s not found", email)
}

func (m *mockUserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.UserRecord
	for _, u := range m.users {
		if filters.TenantID != "" && u.TenantID != filters.TenantID {
			continue
		}
		if filters.Role != "" && u.Role != filters.Role {
			continue
		}
		if filters.ActiveOnly && !u.Active {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *secondary.UserRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return NotFoundf("user %s not found", user.ID)
	}
	m.users[user.ID] = user
	return nil
}
