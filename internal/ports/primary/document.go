package primary

import (
	"context"
	"io"
	"time"
)

// DocumentService defines the primary port for project documents.
type DocumentService interface {
	// UploadDocument stores a blob and its metadata row.
	UploadDocument(ctx context.Context, req UploadDocumentRequest) (*Document, error)

	// ListDocuments lists a project's documents, newest first.
	ListDocuments(ctx context.Context, projectID string) ([]*Document, error)

	// DownloadDocument returns the document metadata and a reader over
	// its contents. Callers close the reader.
	DownloadDocument(ctx context.Context, documentID string) (*Document, io.ReadCloser, error)

	// DeleteDocument removes the metadata row and the stored blob.
	DeleteDocument(ctx context.Context, documentID string) error
}

// UploadDocumentRequest contains parameters for uploading a document.
type UploadDocumentRequest struct {
	ProjectID   string
	Name        string
	Category    string
	ContentType string
	Content     io.Reader
}

// Document represents document metadata at the port boundary.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
