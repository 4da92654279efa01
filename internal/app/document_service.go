package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// validCategories are the document categories the schema accepts.
var validCategories = map[string]bool{
	"workpaper":         true,
	"report":            true,
	"source_data":       true,
	"engagement_letter": true,
	"other":             true,
}

// DocumentServiceImpl implements the DocumentService interface.
// Metadata rows live in the document repository; blob contents live
// behind the blob store port.
type DocumentServiceImpl struct {
	documentRepo secondary.DocumentRepository
	projectRepo  secondary.ProjectRepository
	blobs        secondary.BlobStore
}

// NewDocumentService creates a new DocumentService with injected dependencies.
func NewDocumentService(
	documentRepo secondary.DocumentRepository,
	projectRepo secondary.ProjectRepository,
	blobs secondary.BlobStore,
) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		documentRepo: documentRepo,
		projectRepo:  projectRepo,
		blobs:        blobs,
	}
}

// UploadDocument stores a blob and its metadata row. The blob is
// written first so a failed metadata insert leaves no dangling row;
// the orphaned blob is removed on that path.
func (s *DocumentServiceImpl) UploadDocument(ctx context.Context, req primary.UploadDocumentRequest) (*primary.Document, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, Validationf("document name is required")
	}

	category := req.Category
	if category == "" {
		category = "other"
	}
	if !validCategories[category] {
		return nil, Validationf("invalid document category %q", category)
	}

	if _, err := visibleProject(ctx, s.projectRepo, req.ProjectID); err != nil {
		return nil, err
	}

	storageKey := uuid.NewString()
	size, err := s.blobs.Save(ctx, storageKey, req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store document blob: %w", err)
	}

	record := &secondary.DocumentRecord{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Name:        strings.TrimSpace(req.Name),
		Category:    category,
		StorageKey:  storageKey,
		SizeBytes:   size,
		ContentType: req.ContentType,
		UploadedBy:  ctxutil.ActorIDFromContext(ctx),
	}

	if err := s.documentRepo.Create(ctx, record); err != nil {
		_ = s.blobs.Delete(ctx, storageKey)
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	created, err := s.documentRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created document: %w", err)
	}
	return s.recordToDocument(created), nil
}

// ListDocuments lists a project's documents, newest first.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, projectID string) ([]*primary.Document, error) {
	if _, err := visibleProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	records, err := s.documentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*primary.Document, len(records))
	for i, r := range records {
		docs[i] = s.recordToDocument(r)
	}
	return docs, nil
}

// DownloadDocument returns the document metadata and a reader over its
// contents. Callers close the reader.
func (s *DocumentServiceImpl) DownloadDocument(ctx context.Context, documentID string) (*primary.Document, io.ReadCloser, error) {
	record, err := s.getScoped(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, record.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open document blob: %w", err)
	}
	return s.recordToDocument(record), rc, nil
}

// DeleteDocument removes the metadata row and the stored blob. The row
// goes first so a concurrent download cannot resolve a key whose blob
// is already gone.
func (s *DocumentServiceImpl) DeleteDocument(ctx context.Context, documentID string) error {
	record, err := s.getScoped(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, documentID); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, record.StorageKey); err != nil {
		return fmt.Errorf("failed to delete document blob: %w", err)
	}
	return nil
}

// Helper methods

// getScoped loads a document and hides it from foreign tenants via
// the owning project.
func (s *DocumentServiceImpl) getScoped(ctx context.Context, documentID string) (*secondary.DocumentRecord, error) {
	record, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, record.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owning project: %w", err)
	}
	if !inTenant(ctx, project.TenantID) {
		return nil, NotFoundf("document %s not found", documentID)
	}
	return record, nil
}

func (s *DocumentServiceImpl) recordToDocument(r *secondary.DocumentRecord) *primary.Document {
	return &primary.Document{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		Category:    r.Category,
		SizeBytes:   r.SizeBytes,
		ContentType: r.ContentType,
		UploadedBy:  r.UploadedBy,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure DocumentServiceImpl implements the interface
var _ primary.DocumentService = (*DocumentServiceImpl)(nil)
