package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/tpflow/internal/adapters/sqlite"
	"github.com/example/tpflow/internal/ports/secondary"
)

func TestWorkflowTemplateRepository_ListByDeliverableType(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewWorkflowTemplateRepository(db)
	ctx := context.Background()

	// Insert out of order to prove the ORDER BY.
	seedTemplate(t, db, "TPL-003", "local_file", 3, "Functional Analysis", 7)
	seedTemplate(t, db, "TPL-001", "local_file", 1, "Scoping & Kickoff", 3)
	seedTemplate(t, db, "TPL-002", "local_file", 2, "Data Collection", 10)
	seedTemplate(t, db, "TPL-010", "master_file", 1, "Group Overview", 5)

	templates, err := repo.ListByDeliverableType(ctx, "local_file")
	if err != nil {
		t.Fatalf("ListByDeliverableType failed: %v", err)
	}

	if len(templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(templates))
	}
	for i, tpl := range templates {
		if tpl.StepSequence != i+1 {
			t.Errorf("expected sequence %d at position %d, got %d", i+1, i, tpl.StepSequence)
		}
	}
	if templates[0].Name != "Scoping & Kickoff" {
		t.Errorf("expected 'Scoping & Kickoff' first, got '%s'", templates[0].Name)
	}
	if templates[1].EstimatedDays != 10 {
		t.Errorf("expected 10 estimated days, got %d", templates[1].EstimatedDays)
	}
}

func TestWorkflowTemplateRepository_ListByDeliverableType_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewWorkflowTemplateRepository(db)
	ctx := context.Background()

	templates, err := repo.ListByDeliverableType(ctx, "cbc_report")
	if err != nil {
		t.Fatalf("ListByDeliverableType failed: %v", err)
	}
	if len(templates) != 0 {
		t.Errorf("expected no templates, got %d", len(templates))
	}
}

func TestWorkflowTemplateRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewWorkflowTemplateRepository(db)
	ctx := context.Background()

	seedTemplate(t, db, "TPL-001", "local_file", 1, "Scoping & Kickoff", 3)
	seedTemplate(t, db, "TPL-010", "master_file", 1, "Group Overview", 5)

	all, err := repo.List(ctx, secondary.TemplateFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 templates, got %d", len(all))
	}

	filtered, err := repo.List(ctx, secondary.TemplateFilters{DeliverableType: "master_file"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 template, got %d", len(filtered))
	}
	if filtered[0].ID != "TPL-010" {
		t.Errorf("expected TPL-010, got %s", filtered[0].ID)
	}
}
