package services

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/inkledger/inkledger_backend/internal/dto"
)

// AssignmentSvcFacade owns the assignment lifecycle: creation freezes the quoted
// breakdown, and every later state change is serialized per assignment through
// the version token.
type AssignmentSvcFacade interface {
	CreateAssignment(ctx context.Context, clientID string, req dto.CreateAssignmentRequest) (*domain.Assignment, error)
	GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	ListAssignmentsByClient(ctx context.Context, clientID string, params dto.ListAssignmentsParams) (*dto.ListAssignmentsResponse, error)
	// TransitionStatus moves the assignment to a new status. A transition into a
	// payable status triggers settlement; a transition into Refunded emits the
	// compensating settlement set.
	TransitionStatus(ctx context.Context, assignmentID string, req dto.TransitionStatusRequest, actorID string) (*domain.Assignment, error)
	// ApproveWordCountAdjustment re-quotes the assignment at the new word count
	// and freezes the replacement breakdown. Only allowed before settlement.
	ApproveWordCountAdjustment(ctx context.Context, assignmentID string, req dto.AdjustWordCountRequest, actorID string) (*domain.Assignment, error)
}
