package repositories

import (
	"context"
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// AssignmentReader provides read access to assignments.
type AssignmentReader interface {
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	// ListAssignmentsByClient pages newest-first using an opaque pagination token.
	ListAssignmentsByClient(ctx context.Context, clientID string, limit int, nextToken *string) ([]domain.Assignment, *string, error)
}

// AssignmentWriter provides write access to assignments. All state-changing
// writes are optimistic: they carry the version the caller read and return
// apperrors.ErrStaleVersion when the stored version has moved on.
type AssignmentWriter interface {
	SaveAssignment(ctx context.Context, assignment domain.Assignment) error
	// UpdateAssignmentStatus bumps the version by one on success.
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus, expectedVersion int64, updatedBy string, updatedAt time.Time) error
	// ReplaceBreakdown swaps in the re-quoted word count and frozen breakdown,
	// bumping the version by one on success.
	ReplaceBreakdown(ctx context.Context, assignmentID string, wordCount int, breakdown domain.PriceBreakdown, expectedVersion int64, updatedBy string, updatedAt time.Time) error
}

// AssignmentRepositoryFacade combines all assignment persistence operations.
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
