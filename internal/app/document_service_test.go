package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockDocumentRepository implements secondary.DocumentRepository for testing.
type mockDocumentRepository struct {
	documents map[string]*secondary.DocumentRecord
	createErr error
	getErr    error
	deleteErr error
	listErr   error
}

func newMockDocumentRepository() *mockDocumentRepository {
	return &mockDocumentRepository{
		documents: make(map[string]*secondary.DocumentRecord),
	}
}

func (m *mockDocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.documents[doc.ID] = doc
	return nil
}

func (m *mockDocumentRepository) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if doc, ok := m.documents[id]; ok {
		return doc, nil
	}
	return nil, NotFoundf("document %s not found", id)
}

func (m *mockDocumentRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.documents[id]; !ok {
		return NotFoundf("document %s not found", id)
	}
	delete(m.documents, id)
	return nil
}

func (m *mockDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.DocumentRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.DocumentRecord
	for _, doc := range m.documents {
		if doc.ProjectID == projectID {
			result = append(result, doc)
		}
	}
	return result, nil
}

// mockBlobStore implements secondary.BlobStore over an in-memory map.
type mockBlobStore struct {
	blobs   map[string][]byte
	saveErr error
	openErr error
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{
		blobs: make(map[string][]byte),
	}
}

func (m *mockBlobStore) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.blobs[key] = data
	return int64(len(data)), nil
}

func (m *mockBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	data, ok := m.blobs[key]
	if !ok {
		return nil, NotFoundf("blob %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

// ============================================================================
// Test Helper
// ============================================================================

func newTestDocumentService() (*DocumentServiceImpl, *mockDocumentRepository, *mockProjectRepository, *mockBlobStore) {
	documentRepo := newMockDocumentRepository()
	projectRepo := newMockProjectRepository()
	blobs := newMockBlobStore()
	service := NewDocumentService(documentRepo, projectRepo, blobs)
	return service, documentRepo, projectRepo, blobs
}

// ============================================================================
// UploadDocument Tests
// ============================================================================

func TestUploadDocument_Success(t *testing.T) {
	service, documentRepo, projectRepo, blobs := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	ctx := actorContext("USER-001", "TEN-001", "staff")

	doc, err := service.UploadDocument(ctx, primary.UploadDocumentRequest{
		ProjectID:   "PROJ-001",
		Name:        "functional_analysis.pdf",
		Category:    "workpaper",
		ContentType: "application/pdf",
		Content:     strings.NewReader("pdf bytes"),
	})
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}

	if doc.SizeBytes != int64(len("pdf bytes")) {
		t.Errorf("expected size %d, got %d", len("pdf bytes"), doc.SizeBytes)
	}
	if doc.UploadedBy != "USER-001" {
		t.Errorf("expected uploader USER-001, got %s", doc.UploadedBy)
	}
	record, ok := documentRepo.documents[doc.ID]
	if !ok {
		t.Fatal("expected metadata row persisted")
	}
	if _, ok := blobs.blobs[record.StorageKey]; !ok {
		t.Error("expected blob stored under the record's storage key")
	}
}

func TestUploadDocument_DefaultsCategory(t *testing.T) {
	service, _, projectRepo, _ := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")

	doc, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
		ProjectID: "PROJ-001",
		Name:      "notes.txt",
		Content:   strings.NewReader("misc"),
	})
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}
	if doc.Category != "other" {
		t.Errorf("expected category other, got %s", doc.Category)
	}
}

func TestUploadDocument_InvalidCategory(t *testing.T) {
	service, _, projectRepo, _ := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")

	_, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
		ProjectID: "PROJ-001",
		Name:      "notes.txt",
		Category:  "invoice",
		Content:   strings.NewReader("misc"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUploadDocument_EmptyName(t *testing.T) {
	service, _, projectRepo, _ := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")

	_, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
		ProjectID: "PROJ-001",
		Name:      "  ",
		Content:   strings.NewReader("misc"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUploadDocument_CleansUpBlobOnInsertFailure(t *testing.T) {
	service, documentRepo, projectRepo, blobs := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	documentRepo.createErr = errors.New("disk full")

	_, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
		ProjectID: "PROJ-001",
		Name:      "notes.txt",
		Content:   strings.NewReader("misc"),
	})
	if err == nil {
		t.Fatal("expected upload to fail")
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("expected orphaned blob removed, %d blobs remain", len(blobs.blobs))
	}
}

// ============================================================================
// DownloadDocument Tests
// ============================================================================

func TestDownloadDocument_RoundTrip(t *testing.T) {
	service, _, projectRepo, _ := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")

	uploaded, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
		ProjectID: "PROJ-001",
		Name:      "benchmark_set.csv",
		Category:  "source_data",
		Content:   strings.NewReader("comp_a,comp_b\n1,2\n"),
	})
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}

	doc, rc, err := service.DownloadDocument(context.Background(), uploaded.ID)
	if err != nil {
		t.Fatalf("DownloadDocument failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading blob failed: %v", err)
	}
	if string(data) != "comp_a,comp_b\n1,2\n" {
		t.Errorf("unexpected blob contents: %q", data)
	}
	if doc.Name != "benchmark_set.csv" {
		t.Errorf("unexpected document name: %s", doc.Name)
	}
}

func TestDownloadDocument_CrossTenantHidden(t *testing.T) {
	service, _, projectRepo, _ := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")

	uploaded, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
		ProjectID: "PROJ-001",
		Name:      "notes.txt",
		Content:   strings.NewReader("misc"),
	})
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}

	_, _, err = service.DownloadDocument(actorContext("USER-900", "TEN-OTHER", "admin"), uploaded.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found for foreign tenant, got %v", err)
	}
}

// ============================================================================
// DeleteDocument / ListDocuments Tests
// ============================================================================

func TestDeleteDocument_RemovesRowAndBlob(t *testing.T) {
	service, documentRepo, projectRepo, blobs := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")

	uploaded, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
		ProjectID: "PROJ-001",
		Name:      "notes.txt",
		Content:   strings.NewReader("misc"),
	})
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}

	if err := service.DeleteDocument(context.Background(), uploaded.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if len(documentRepo.documents) != 0 {
		t.Error("expected metadata row removed")
	}
	if len(blobs.blobs) != 0 {
		t.Error("expected blob removed")
	}
}

func TestListDocuments_ScopedToProject(t *testing.T) {
	service, _, projectRepo, _ := newTestDocumentService()
	seedProject(projectRepo, "PROJ-001", "analysis")
	seedProject(projectRepo, "PROJ-002", "analysis")

	for _, upload := range []struct{ project, name string }{
		{"PROJ-001", "a.txt"},
		{"PROJ-001", "b.txt"},
		{"PROJ-002", "c.txt"},
	} {
		_, err := service.UploadDocument(context.Background(), primary.UploadDocumentRequest{
			ProjectID: upload.project,
			Name:      upload.name,
			Content:   strings.NewReader("x"),
		})
		if err != nil {
			t.Fatalf("UploadDocument failed: %v", err)
		}
	}

	docs, err := service.ListDocuments(context.Background(), "PROJ-001")
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 documents, got %d", len(docs))
	}
}
