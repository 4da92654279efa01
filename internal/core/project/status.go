// Package project contains the pure business logic for project
// status: the percentage banding that derives a project's lifecycle
// status from its workflow completion, and the manual statuses that
// banding never overwrites.
package project

// Status represents the possible states of a project.
type Status string

const (
	StatusPlanning       Status = "planning"
	StatusAnalysis       Status = "analysis"
	StatusDrafting       Status = "drafting"
	StatusInternalReview Status = "internal_review"
	StatusFinalization   Status = "finalization"
	StatusDelivered      Status = "delivered"
	StatusOnHold         Status = "on_hold"
	StatusCancelled      Status = "cancelled"
)

// DeliverableType identifies which workflow template set a project
// instantiates.
type DeliverableType string

const (
	DeliverableLocalFile    DeliverableType = "local_file"
	DeliverableMasterFile   DeliverableType = "master_file"
	DeliverableBenchmarking DeliverableType = "benchmarking_study"
	DeliverableCbCReport    DeliverableType = "cbc_report"
)

// ValidStatus reports whether s is a recognized project status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPlanning, StatusAnalysis, StatusDrafting, StatusInternalReview,
		StatusFinalization, StatusDelivered, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

// ValidDeliverableType reports whether s is a recognized deliverable type.
func ValidDeliverableType(s string) bool {
	switch DeliverableType(s) {
	case DeliverableLocalFile, DeliverableMasterFile, DeliverableBenchmarking, DeliverableCbCReport:
		return true
	}
	return false
}

// IsManualStatus reports whether s is set only through the explicit
// status endpoint and must survive reprojection.
func IsManualStatus(s Status) bool {
	return s == StatusOnHold || s == StatusCancelled
}

// InitialStatus returns the status new projects receive.
func InitialStatus() Status {
	return StatusPlanning
}
