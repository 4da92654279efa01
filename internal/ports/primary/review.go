package primary

import (
	"context"
	"time"
)

// ReviewService defines the primary port for internal reviews.
type ReviewService interface {
	// RequestReview opens a review on a project, optionally tied to a
	// workflow step.
	RequestReview(ctx context.Context, req RequestReviewRequest) (*Review, error)

	// GetReview retrieves a review by ID.
	GetReview(ctx context.Context, reviewID string) (*Review, error)

	// ListReviews lists reviews with optional filters.
	ListReviews(ctx context.Context, filters ReviewFilters) ([]*Review, error)

	// DecideReview records the reviewer's decision on a pending review.
	DecideReview(ctx context.Context, req DecideReviewRequest) (*Review, error)
}

// RequestReviewRequest contains parameters for requesting a review.
type RequestReviewRequest struct {
	ProjectID  string `json:"-"`
	StepID     string `json:"step_id,omitempty"`
	ReviewerID string `json:"reviewer_id"`
	Notes      string `json:"notes,omitempty"`
}

// DecideReviewRequest contains parameters for deciding a review.
type DecideReviewRequest struct {
	ReviewID string `json:"-"`
	Decision string `json:"decision"`
	Notes    string `json:"notes,omitempty"`
}

// Review represents a review entity at the port boundary.
type Review struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	StepID      string     `json:"step_id,omitempty"`
	RequestedBy string     `json:"requested_by"`
	ReviewerID  string     `json:"reviewer_id"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReviewFilters contains filter options for listing reviews.
type ReviewFilters struct {
	ProjectID  string
	ReviewerID string
	Status     string
}
