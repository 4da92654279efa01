// Package review contains the pure business logic for internal review
// requests and decisions.
package review

import "fmt"

// Status represents the possible states of a review.
type Status string

const (
	StatusPending          Status = "pending"
	StatusApproved         Status = "approved"
	StatusChangesRequested Status = "changes_requested"
)

// ValidDecision reports whether s is an acceptable review outcome.
func ValidDecision(s string) bool {
	return Status(s) == StatusApproved || Status(s) == StatusChangesRequested
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RequestReviewContext provides context for review request guards.
type RequestReviewContext struct {
	RequesterID    string
	ReviewerID     string
	ReviewerExists bool
	ReviewerRole   string // "admin", "manager" or "staff"
}

// DecideReviewContext provides context for review decision guards.
type DecideReviewContext struct {
	ReviewStatus Status
	ReviewerID   string
	ActorID      string
	ActorRole    string
}

// CanRequestReview evaluates whether a review can be requested.
// Rules:
// - Reviewer must exist
// - Reviewer must not be the requester
// - Reviewer must hold the manager or admin role
func CanRequestReview(ctx RequestReviewContext) GuardResult {
	if !ctx.ReviewerExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("reviewer %s not found", ctx.ReviewerID),
		}
	}

	if ctx.ReviewerID == ctx.RequesterID {
		return GuardResult{
			Allowed: false,
			Reason:  "cannot request a review from yourself",
		}
	}

	if ctx.ReviewerRole != "manager" && ctx.ReviewerRole != "admin" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("reviewer must be a manager or admin (current role: %s)", ctx.ReviewerRole),
		}
	}

	return GuardResult{Allowed: true}
}

// CanDecideReview evaluates whether a review is in a decidable state.
// Rules:
// - Only pending reviews can be decided
func CanDecideReview(ctx DecideReviewContext) GuardResult {
	if ctx.ReviewStatus != StatusPending {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("review already decided (current status: %s)", ctx.ReviewStatus),
		}
	}

	return GuardResult{Allowed: true}
}

// IsDecider evaluates whether the actor may decide the review.
// Rules:
// - The assigned reviewer may decide
// - Admins may decide on anyone's behalf
func IsDecider(ctx DecideReviewContext) GuardResult {
	if ctx.ActorID == ctx.ReviewerID || ctx.ActorRole == "admin" {
		return GuardResult{Allowed: true}
	}

	return GuardResult{
		Allowed: false,
		Reason:  "only the assigned reviewer or an admin can decide this review",
	}
}
