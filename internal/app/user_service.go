package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// validRoles are the roles a user may hold.
var validRoles = map[string]bool{
	"admin":   true,
	"manager": true,
	"staff":   true,
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userRepo secondary.UserRepository
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(userRepo secondary.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

// CreateUser creates a new user in the actor's tenant. Only admins may
// create users; the generated API token is returned exactly once.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.User, error) {
	actor := ctxutil.ActorFromContext(ctx)
	if actor.ID != "" && actor.Role != "admin" {
		return nil, Forbiddenf("only admins can create users")
	}

	if strings.TrimSpace(req.Email) == "" {
		return nil, Validationf("email is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, Validationf("name is required")
	}
	if !validRoles[req.Role] {
		return nil, Validationf("invalid role %q (must be admin, manager or staff)", req.Role)
	}

	// Reject duplicate emails before hitting the UNIQUE constraint so
	// the caller gets an actionable message.
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, Validationf("a user with email %s already exists", req.Email)
	}

	record := &secondary.UserRecord{
		ID:       uuid.NewString(),
		TenantID: actor.TenantID,
		Email:    strings.TrimSpace(req.Email),
		Name:     strings.TrimSpace(req.Name),
		Role:     req.Role,
		APIToken: uuid.NewString(),
		Active:   true,
	}

	if err := s.userRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.userRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created user: %w", err)
	}

	// Creation is the only response that carries the token.
	user := s.recordToUser(created)
	user.APIToken = created.APIToken
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*primary.User, error) {
	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !inTenant(ctx, record.TenantID) {
		return nil, NotFoundf("user %s not found", userID)
	}
	return s.recordToUser(record), nil
}

// ListUsers lists the tenant's users.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filters primary.UserFilters) ([]*primary.User, error) {
	records, err := s.userRepo.List(ctx, secondary.UserFilters{
		TenantID:   ctxutil.ActorFromContext(ctx).TenantID,
		Role:       filters.Role,
		ActiveOnly: filters.ActiveOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*primary.User, len(records))
	for i, r := range records {
		users[i] = s.recordToUser(r)
	}
	return users, nil
}

// DeactivateUser disables a user's access. Admin only.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, userID string) error {
	actor := ctxutil.ActorFromContext(ctx)
	if actor.ID != "" && actor.Role != "admin" {
		return Forbiddenf("only admins can deactivate users")
	}

	record, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !inTenant(ctx, record.TenantID) {
		return NotFoundf("user %s not found", userID)
	}

	if !record.Active {
		return nil
	}

	record.Active = false
	if err := s.userRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its active user. The user
// repository only matches active users, so deactivation revokes
// access immediately.
func (s *UserServiceImpl) Authenticate(ctx context.Context, token string) (*primary.User, error) {
	if token == "" {
		return nil, NotFoundf("no token presented")
	}

	record, err := s.userRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.recordToUser(record), nil
}

// Helper methods

func (s *UserServiceImpl) recordToUser(r *secondary.UserRecord) *primary.User {
	return &primary.User{
		ID:        r.ID,
		TenantID:  r.TenantID,
		Email:     r.Email,
		Name:      r.Name,
		Role:      r.Role,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure UserServiceImpl implements the interface
var _ primary.UserService = (*UserServiceImpl)(nil)
