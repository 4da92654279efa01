package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
)

// ============================================================================
// Stub Services
// ============================================================================

// stubUserService resolves tokens from a fixture map and records the
// actor CreateUser ran as. Unused interface methods are inherited from
// the embedded nil interface and panic if reached.
type stubUserService struct {
	primary.UserService
	tokens          map[string]*primary.User
	created         *primary.User
	createErr       error
	lastCreate      primary.CreateUserRequest
	lastCreateActor ctxutil.Actor
}

func (s *stubUserService) Authenticate(_ context.Context, token string) (*primary.User, error) {
	user, ok := s.tokens[token]
	if !ok {
		return nil, app.NotFoundf("unknown token")
	}
	return user, nil
}

func (s *stubUserService) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.User, error) {
	s.lastCreate = req
	s.lastCreateActor = ctxutil.ActorFromContext(ctx)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

type stubProjectService struct {
	primary.ProjectService
	project   *primary.Project
	projects  []*primary.Project
	getErr    error
	lastActor ctxutil.Actor
}

func (s *stubProjectService) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	s.lastActor = ctxutil.ActorFromContext(ctx)
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.project, nil
}

func (s *stubProjectService) ListProjects(ctx context.Context, _ primary.ProjectFilters) ([]*primary.Project, error) {
	s.lastActor = ctxutil.ActorFromContext(ctx)
	return s.projects, nil
}

type stubWorkflowService struct {
	primary.WorkflowService
	step        *primary.WorkflowStep
	updateErr   error
	updateCalls int
	lastStepID  string
	lastPatch   primary.StepPatch
}

func (s *stubWorkflowService) UpdateStep(_ context.Context, stepID string, patch primary.StepPatch) (*primary.WorkflowStep, error) {
	s.updateCalls++
	s.lastStepID = stepID
	s.lastPatch = patch
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.step, nil
}

type stubClientService struct {
	primary.ClientService
	deleteErr   error
	deleteCalls int
}

func (s *stubClientService) DeleteClient(_ context.Context, _ string) error {
	s.deleteCalls++
	return s.deleteErr
}

// ============================================================================
// Test Helpers
// ============================================================================

func fixtureUser(id, tenantID, role string) *primary.User {
	return &primary.User{ID: id, TenantID: tenantID, Role: role, Name: "Fixture " + id, Active: true}
}

func newTestServer(services Services, bootstrap Bootstrap) *Server {
	return New(services, log.New(io.Discard), bootstrap, nil)
}

func doRequest(s *Server, method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var envelope ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	return envelope
}

// ============================================================================
// Health Tests
// ============================================================================

func TestHealthz_NoAuthRequired(t *testing.T) {
	server := newTestServer(Services{}, Bootstrap{})

	rec := doRequest(server, http.MethodGet, "/healthz", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// ============================================================================
// Auth Middleware Tests
// ============================================================================

func TestAuth_MissingToken(t *testing.T) {
	server := newTestServer(Services{Users: &stubUserService{}}, Bootstrap{})

	rec := doRequest(server, http.MethodGet, "/api/v1/projects", "", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error.Code != "unauthorized" {
		t.Errorf("error.code = %q, want \"unauthorized\"", envelope.Error.Code)
	}
}

func TestAuth_UnknownToken(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{}}
	server := newTestServer(Services{Users: users}, Bootstrap{})

	rec := doRequest(server, http.MethodGet, "/api/v1/projects", "nope", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_ResolvesActor(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{
		"tok-123": fixtureUser("USER-001", "TEN-001", "manager"),
	}}
	projects := &stubProjectService{projects: []*primary.Project{}}
	server := newTestServer(Services{Users: users, Projects: projects}, Bootstrap{})

	rec := doRequest(server, http.MethodGet, "/api/v1/projects", "tok-123", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if projects.lastActor.ID != "USER-001" {
		t.Errorf("actor.ID = %q, want USER-001", projects.lastActor.ID)
	}
	if projects.lastActor.TenantID != "TEN-001" {
		t.Errorf("actor.TenantID = %q, want TEN-001", projects.lastActor.TenantID)
	}
	if projects.lastActor.Role != "manager" {
		t.Errorf("actor.Role = %q, want manager", projects.lastActor.Role)
	}
}

func TestAuth_BootstrapTokenCreatesFirstUser(t *testing.T) {
	users := &stubUserService{
		tokens:  map[string]*primary.User{},
		created: fixtureUser("USER-NEW", "TEN-001", "admin"),
	}
	server := newTestServer(Services{Users: users}, Bootstrap{Token: "seed-token", TenantID: "TEN-001"})

	body := strings.NewReader(`{"email":"root@firm.test","name":"Root","role":"admin"}`)
	rec := doRequest(server, http.MethodPost, "/api/v1/users", "seed-token", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if users.lastCreate.Email != "root@firm.test" {
		t.Errorf("create email = %q, want root@firm.test", users.lastCreate.Email)
	}
	if users.lastCreateActor.Role != "admin" {
		t.Errorf("bootstrap actor role = %q, want admin", users.lastCreateActor.Role)
	}
	if users.lastCreateActor.TenantID != "TEN-001" {
		t.Errorf("bootstrap actor tenant = %q, want TEN-001", users.lastCreateActor.TenantID)
	}
}

func TestAuth_BootstrapDisabledWhenUnset(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{}}
	server := newTestServer(Services{Users: users}, Bootstrap{})

	rec := doRequest(server, http.MethodGet, "/api/v1/projects", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// An empty bootstrap token must never match an empty-ish header.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer ")
	rec2 := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("blank token status = %d, want %d", rec2.Code, http.StatusUnauthorized)
	}
}

// ============================================================================
// Role Gate Tests
// ============================================================================

func TestDeleteClient_RoleGate(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
		wantCalls  int
	}{
		{"staff forbidden", "staff", http.StatusForbidden, 0},
		{"manager allowed", "manager", http.StatusNoContent, 1},
		{"admin allowed", "admin", http.StatusNoContent, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUserService{tokens: map[string]*primary.User{
				"tok": fixtureUser("USER-001", "TEN-001", tt.role),
			}}
			clients := &stubClientService{}
			server := newTestServer(Services{Users: users, Clients: clients}, Bootstrap{})

			rec := doRequest(server, http.MethodDelete, "/api/v1/clients/CLI-001", "tok", nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if clients.deleteCalls != tt.wantCalls {
				t.Errorf("delete calls = %d, want %d", clients.deleteCalls, tt.wantCalls)
			}
			if tt.wantStatus == http.StatusForbidden {
				envelope := decodeEnvelope(t, rec)
				if envelope.Error.Code != "forbidden" {
					t.Errorf("error.code = %q, want \"forbidden\"", envelope.Error.Code)
				}
			}
		})
	}
}

// ============================================================================
// Error Mapping Tests
// ============================================================================

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", app.NotFoundf("project not found"), http.StatusNotFound, "not_found"},
		{"validation", app.Validationf("bad input"), http.StatusBadRequest, "validation_failed"},
		{"forbidden", app.Forbiddenf("no"), http.StatusForbidden, "forbidden"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubUserService{tokens: map[string]*primary.User{
				"tok": fixtureUser("USER-001", "TEN-001", "staff"),
			}}
			projects := &stubProjectService{getErr: tt.err}
			server := newTestServer(Services{Users: users, Projects: projects}, Bootstrap{})

			rec := doRequest(server, http.MethodGet, "/api/v1/projects/PROJ-001", "tok", nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			envelope := decodeEnvelope(t, rec)
			if envelope.Error.Code != tt.wantCode {
				t.Errorf("error.code = %q, want %q", envelope.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestErrorMapping_InternalHidesDetail(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{
		"tok": fixtureUser("USER-001", "TEN-001", "staff"),
	}}
	projects := &stubProjectService{getErr: errors.New("sql: database is locked")}
	server := newTestServer(Services{Users: users, Projects: projects}, Bootstrap{})

	rec := doRequest(server, http.MethodGet, "/api/v1/projects/PROJ-001", "tok", nil)

	envelope := decodeEnvelope(t, rec)
	if strings.Contains(envelope.Error.Message, "sql") {
		t.Errorf("internal error leaked detail: %q", envelope.Error.Message)
	}
}

// ============================================================================
// Step Patch Tests
// ============================================================================

func TestUpdateStep_Success(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{
		"tok": fixtureUser("USER-001", "TEN-001", "staff"),
	}}
	workflow := &stubWorkflowService{step: &primary.WorkflowStep{ID: "STEP-001", Status: "in_progress"}}
	server := newTestServer(Services{Users: users, Workflow: workflow}, Bootstrap{})

	body := strings.NewReader(`{"status":"in_progress","completion_percentage":40}`)
	rec := doRequest(server, http.MethodPatch, "/api/v1/workflow-steps/STEP-001", "tok", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if workflow.lastStepID != "STEP-001" {
		t.Errorf("step id = %q, want STEP-001", workflow.lastStepID)
	}
	if workflow.lastPatch.Status == nil || *workflow.lastPatch.Status != "in_progress" {
		t.Errorf("patch.Status = %v, want in_progress", workflow.lastPatch.Status)
	}
	if workflow.lastPatch.CompletionPercentage == nil || *workflow.lastPatch.CompletionPercentage != 40 {
		t.Errorf("patch.CompletionPercentage = %v, want 40", workflow.lastPatch.CompletionPercentage)
	}
}

func TestUpdateStep_UnknownFieldRejected(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{
		"tok": fixtureUser("USER-001", "TEN-001", "staff"),
	}}
	workflow := &stubWorkflowService{}
	server := newTestServer(Services{Users: users, Workflow: workflow}, Bootstrap{})

	body := strings.NewReader(`{"pct":50}`)
	rec := doRequest(server, http.MethodPatch, "/api/v1/workflow-steps/STEP-001", "tok", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error.Code != "validation_failed" {
		t.Errorf("error.code = %q, want \"validation_failed\"", envelope.Error.Code)
	}
	if workflow.updateCalls != 0 {
		t.Errorf("update calls = %d, want 0", workflow.updateCalls)
	}
}

func TestUpdateStep_TrailingContentRejected(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{
		"tok": fixtureUser("USER-001", "TEN-001", "staff"),
	}}
	workflow := &stubWorkflowService{}
	server := newTestServer(Services{Users: users, Workflow: workflow}, Bootstrap{})

	body := strings.NewReader(`{"status":"blocked"}{"status":"completed"}`)
	rec := doRequest(server, http.MethodPatch, "/api/v1/workflow-steps/STEP-001", "tok", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if workflow.updateCalls != 0 {
		t.Errorf("update calls = %d, want 0", workflow.updateCalls)
	}
}

// ============================================================================
// List Serialization Tests
// ============================================================================

func TestListProjects_EmptyArrayNotNull(t *testing.T) {
	users := &stubUserService{tokens: map[string]*primary.User{
		"tok": fixtureUser("USER-001", "TEN-001", "staff"),
	}}
	projects := &stubProjectService{projects: nil}
	server := newTestServer(Services{Users: users, Projects: projects}, Bootstrap{})

	rec := doRequest(server, http.MethodGet, "/api/v1/projects", "tok", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}
