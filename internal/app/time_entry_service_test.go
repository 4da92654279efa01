package app

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockTimeEntryRepository implements secondary.TimeEntryRepository for testing.
type mockTimeEntryRepository struct {
	entries   map[string]*secondary.TimeEntryRecord
	createErr error
	getErr    error
	deleteErr error
	listErr   error
	totalsErr error
}

func newMockTimeEntryRepository() *mockTimeEntryRepository {
	return &mockTimeEntryRepository{
		entries: make(map[string]*secondary.TimeEntryRecord),
	}
}

func (m *mockTimeEntryRepository) Create(ctx context.Context, entry *secondary.TimeEntryRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockTimeEntryRepository) GetByID(ctx context.Context, id string) (*secondary.TimeEntryRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if entry, ok := m.entries[id]; ok {
		return entry, nil
	}
	return nil, NotFoundf("time entry %s not found", id)
}

func (m *mockTimeEntryRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.entries[id]; !ok {
		return NotFoundf("time entry %s not found", id)
	}
	delete(m.entries, id)
	return nil
}

func (m *mockTimeEntryRepository) List(ctx context.Context, filters secondary.TimeEntryFilters) ([]*secondary.TimeEntryRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.TimeEntryRecord
	for _, entry := range m.entries {
		if filters.ProjectID != "" && entry.ProjectID != filters.ProjectID {
			continue
		}
		if filters.UserID != "" && entry.UserID != filters.UserID {
			continue
		}
		if filters.From != nil && entry.EntryDate.Before(*filters.From) {
			continue
		}
		if filters.To != nil && entry.EntryDate.After(*filters.To) {
			continue
		}
		result = append(result, entry)
	}
	// Real adapter orders by entry_date descending.
	sort.Slice(result, func(i, j int) bool {
		return result[i].EntryDate.After(result[j].EntryDate)
	})
	return result, nil
}

func (m *mockTimeEntryRepository) Totals(ctx context.Context, projectID string) (*secondary.TimeTotalsRecord, error) {
	if m.totalsErr != nil {
		return nil, m.totalsErr
	}
	totals := &secondary.TimeTotalsRecord{}
	byUser := make(map[string]float64)
	for _, entry := range m.entries {
		if entry.ProjectID != projectID {
			continue
		}
		totals.TotalHours += entry.Hours
		if entry.Billable {
			totals.BillableHours += entry.Hours
		}
		byUser[entry.UserID] += entry.Hours
	}
	userIDs := make([]string, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)
	for _, id := range userIDs {
		totals.ByUser = append(totals.ByUser, secondary.UserHoursRecord{UserID: id, Hours: byUser[id]})
	}
	return totals, nil
}

// ============================================================================
// Test Helper
// ============================================================================

func newTestTimeEntryService() (*TimeEntryServiceImpl, *mockTimeEntryRepository, *mockProjectRepository, *mockTaskRepository) {
	entryRepo := newMockTimeEntryRepository()
	projectRepo := newMockProjectRepository()
	taskRepo := newMockTaskRepository()
	service := NewTimeEntryService(entryRepo, projectRepo, taskRepo)
	return service, entryRepo, projectRepo, taskRepo
}

func seedEntryRecord(entryRepo *mockTimeEntryRepository, id, projectID, userID string, hours float64, billable bool) {
	entryRepo.entries[id] = &secondary.TimeEntryRecord{
		ID:        id,
		ProjectID: projectID,
		UserID:    userID,
		EntryDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Hours:     hours,
		Billable:  billable,
	}
}

// ============================================================================
// LogTime Tests
// ============================================================================

func TestLogTime_Success(t *testing.T) {
	service, entryRepo, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	ctx := actorContext("USER-001", "TEN-001", "staff")

	entry, err := service.LogTime(ctx, primary.LogTimeRequest{
		ProjectID:   "PROJ-001",
		EntryDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Hours:       7.5,
		Description: "Functional interviews",
	})
	if err != nil {
		t.Fatalf("LogTime failed: %v", err)
	}

	if entry.UserID != "USER-001" {
		t.Errorf("expected entry credited to the actor, got %s", entry.UserID)
	}
	if !entry.Billable {
		t.Error("expected billable to default to true")
	}
	if _, ok := entryRepo.entries[entry.ID]; !ok {
		t.Error("expected entry persisted")
	}
}

func TestLogTime_RequiresActor(t *testing.T) {
	service, _, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")

	_, err := service.LogTime(context.Background(), primary.LogTimeRequest{
		ProjectID: "PROJ-001",
		EntryDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Hours:     2,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected forbidden error, got %v", err)
	}
}

func TestLogTime_HoursOutOfRange(t *testing.T) {
	service, _, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	ctx := actorContext("USER-001", "TEN-001", "staff")

	for _, hours := range []float64{0, -1, 24.5} {
		_, err := service.LogTime(ctx, primary.LogTimeRequest{
			ProjectID: "PROJ-001",
			EntryDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Hours:     hours,
		})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("hours=%v: expected validation error, got %v", hours, err)
		}
	}
}

func TestLogTime_MissingDate(t *testing.T) {
	service, _, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	ctx := actorContext("USER-001", "TEN-001", "staff")

	_, err := service.LogTime(ctx, primary.LogTimeRequest{
		ProjectID: "PROJ-001",
		Hours:     4,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLogTime_TaskFromOtherProject(t *testing.T) {
	service, _, projectRepo, taskRepo := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	seedProject(projectRepo, "PROJ-002", "analysis")
	seedTaskRecord(taskRepo, "TASK-001", "PROJ-002", "Collect agreements", "open")
	ctx := actorContext("USER-001", "TEN-001", "staff")

	_, err := service.LogTime(ctx, primary.LogTimeRequest{
		ProjectID: "PROJ-001",
		TaskID:    "TASK-001",
		EntryDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Hours:     4,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

// ============================================================================
// DeleteEntry Tests
// ============================================================================

func TestDeleteEntry_AuthorCanDelete(t *testing.T) {
	service, entryRepo, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	seedEntryRecord(entryRepo, "ENTRY-001", "PROJ-001", "USER-001", 7.5, true)

	err := service.DeleteEntry(actorContext("USER-001", "TEN-001", "staff"), "ENTRY-001")
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if _, ok := entryRepo.entries["ENTRY-001"]; ok {
		t.Error("expected entry removed")
	}
}

func TestDeleteEntry_OtherUserForbidden(t *testing.T) {
	service, entryRepo, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	seedEntryRecord(entryRepo, "ENTRY-001", "PROJ-001", "USER-001", 7.5, true)

	err := service.DeleteEntry(actorContext("USER-002", "TEN-001", "staff"), "ENTRY-001")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected forbidden error, got %v", err)
	}
	if _, ok := entryRepo.entries["ENTRY-001"]; !ok {
		t.Error("expected entry to survive")
	}
}

func TestDeleteEntry_AdminCanDelete(t *testing.T) {
	service, entryRepo, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	seedEntryRecord(entryRepo, "ENTRY-001", "PROJ-001", "USER-001", 7.5, true)

	err := service.DeleteEntry(actorContext("USER-ADMIN", "TEN-001", "admin"), "ENTRY-001")
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if _, ok := entryRepo.entries["ENTRY-001"]; ok {
		t.Error("expected entry removed")
	}
}

// ============================================================================
// ListEntries / GetTotals Tests
// ============================================================================

func TestListEntries_UserFilter(t *testing.T) {
	service, entryRepo, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	seedEntryRecord(entryRepo, "ENTRY-001", "PROJ-001", "USER-001", 7.5, true)
	seedEntryRecord(entryRepo, "ENTRY-002", "PROJ-001", "USER-002", 3, true)

	entries, err := service.ListEntries(context.Background(), primary.TimeEntryFilters{
		ProjectID: "PROJ-001",
		UserID:    "USER-002",
	})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "ENTRY-002" {
		t.Errorf("expected only ENTRY-002, got %d entries", len(entries))
	}
}

func TestGetTotals_RollsUpByUser(t *testing.T) {
	service, entryRepo, projectRepo, _ := newTestTimeEntryService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	seedEntryRecord(entryRepo, "ENTRY-001", "PROJ-001", "USER-001", 7.5, true)
	seedEntryRecord(entryRepo, "ENTRY-002", "PROJ-001", "USER-001", 2.5, false)
	seedEntryRecord(entryRepo, "ENTRY-003", "PROJ-001", "USER-002", 4, true)
	seedEntryRecord(entryRepo, "ENTRY-004", "PROJ-OTHER", "USER-001", 8, true)

	totals, err := service.GetTotals(context.Background(), "PROJ-001")
	if err != nil {
		t.Fatalf("GetTotals failed: %v", err)
	}

	if totals.TotalHours != 14 {
		t.Errorf("expected 14 total hours, got %v", totals.TotalHours)
	}
	if totals.BillableHours != 11.5 {
		t.Errorf("expected 11.5 billable hours, got %v", totals.BillableHours)
	}
	if len(totals.ByUser) != 2 {
		t.Fatalf("expected 2 users in rollup, got %d", len(totals.ByUser))
	}
	if totals.ByUser[0].UserID != "USER-001" || totals.ByUser[0].Hours != 10 {
		t.Errorf("unexpected first rollup row: %+v", totals.ByUser[0])
	}
}
