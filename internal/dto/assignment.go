package dto

import (
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// CreateAssignmentRequest defines the payload for creating an assignment. The
// quoted breakdown is recomputed server-side and frozen; clients never submit
// prices.
type CreateAssignmentRequest struct {
	Title         string    `json:"title" binding:"required"`
	WordCount     int       `json:"wordCount" binding:"required,gt=0"`
	Deadline      time.Time `json:"deadline" binding:"required"`
	SuperWorkerID string    `json:"superWorkerID" binding:"required"`
	WorkerID      *string   `json:"workerID,omitempty"`
}

// TransitionStatusRequest moves an assignment to a new status. Version is the
// optimistic concurrency token read with the assignment.
type TransitionStatusRequest struct {
	Status  domain.AssignmentStatus `json:"status" binding:"required"`
	Version int64                   `json:"version" binding:"required,gt=0"`
}

// AdjustWordCountRequest applies an approved word-count adjustment, producing a
// replacement frozen breakdown.
type AdjustWordCountRequest struct {
	WordCount int   `json:"wordCount" binding:"required,gt=0"`
	Version   int64 `json:"version" binding:"required,gt=0"`
}

// ListAssignmentsParams holds pagination parameters for listing assignments.
type ListAssignmentsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// AssignmentResponse is the full financial view of an assignment, served to
// roles with financial visibility.
type AssignmentResponse struct {
	AssignmentID string                  `json:"assignmentID"`
	ClientID     string                  `json:"clientID"`
	Chain        domain.HierarchyChain   `json:"chain"`
	Title        string                  `json:"title"`
	WordCount    int                     `json:"wordCount"`
	RequestedAt  time.Time               `json:"requestedAt"`
	Deadline     time.Time               `json:"deadline"`
	Breakdown    PriceBreakdownResponse  `json:"breakdown"`
	Status       domain.AssignmentStatus `json:"status"`
	Version      int64                   `json:"version"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// WorkerAssignmentResponse is the worker-facing view. It carries no monetary
// fields at all; the omission is structural, not a serialization option, so an
// error path cannot leak a partial breakdown to a worker.
type WorkerAssignmentResponse struct {
	AssignmentID string                  `json:"assignmentID"`
	Title        string                  `json:"title"`
	WordCount    int                     `json:"wordCount"`
	Deadline     time.Time               `json:"deadline"`
	Status       domain.AssignmentStatus `json:"status"`
}

// ListAssignmentsResponse is a page of assignments with the next pagination token.
type ListAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	NextToken   *string              `json:"nextToken,omitempty"`
}

// ToAssignmentResponse converts a domain assignment to its full financial view.
func ToAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID: a.AssignmentID,
		ClientID:     a.ClientID,
		Chain:        a.Chain,
		Title:        a.Title,
		WordCount:    a.WordCount,
		RequestedAt:  a.RequestedAt,
		Deadline:     a.Deadline,
		Breakdown:    ToPriceBreakdownResponse(a.Breakdown, nil, false),
		Status:       a.Status,
		Version:      a.Version,
		CreatedAt:    a.CreatedAt,
	}
}

// ToWorkerAssignmentResponse converts a domain assignment to the worker view.
func ToWorkerAssignmentResponse(a *domain.Assignment) WorkerAssignmentResponse {
	return WorkerAssignmentResponse{
		AssignmentID: a.AssignmentID,
		Title:        a.Title,
		WordCount:    a.WordCount,
		Deadline:     a.Deadline,
		Status:       a.Status,
	}
}
