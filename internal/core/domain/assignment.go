package domain

import "time"

// AssignmentStatus indicates where an assignment sits in its lifecycle.
type AssignmentStatus string

const (
	StatusRequested  AssignmentStatus = "REQUESTED"
	StatusInProgress AssignmentStatus = "IN_PROGRESS"
	StatusCompleted  AssignmentStatus = "COMPLETED"
	StatusPaid       AssignmentStatus = "PAID"
	StatusCancelled  AssignmentStatus = "CANCELLED"
	StatusRefunded   AssignmentStatus = "REFUNDED"
)

// Payable reports whether reaching this status triggers settlement.
func (s AssignmentStatus) Payable() bool {
	return s == StatusPaid
}

// Terminal reports whether the status ends the assignment's lifecycle.
func (s AssignmentStatus) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusRefunded
}

// CanTransitionTo encodes the allowed status transitions. Refunds are only
// reachable from Paid, so a compensating settlement always has originals to negate.
func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	switch s {
	case StatusRequested:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCompleted:
		return next == StatusPaid || next == StatusCancelled
	case StatusPaid:
		return next == StatusRefunded
	case StatusCancelled, StatusRefunded:
		return false
	}
	return false
}

// Assignment is a client work request with its frozen price and resolved party
// chain. Version is the optimistic concurrency token: every state-changing write
// must carry the version it read, and a mismatch is rejected with ErrStaleVersion.
type Assignment struct {
	AssignmentID string           `json:"assignmentID"` // Primary Key (UUID)
	ClientID     string           `json:"clientID"`
	Chain        HierarchyChain   `json:"chain"`
	Title        string           `json:"title"`
	WordCount    int              `json:"wordCount"`
	RequestedAt  time.Time        `json:"requestedAt"`
	Deadline     time.Time        `json:"deadline"`
	Breakdown    PriceBreakdown   `json:"breakdown"` // frozen at creation
	Status       AssignmentStatus `json:"status"`
	Version      int64            `json:"version"`
	AuditFields
}
