package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// assignmentService owns the assignment lifecycle. Quote computation is free to
// race; everything after creation is serialized per assignment by the version
// token carried on every write.
type assignmentService struct {
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	hierarchySvc   portssvc.HierarchySvcFacade
	pricingSvc     portssvc.PricingSvcFacade
	settlementSvc  portssvc.SettlementSvcFacade
	policy         domain.UrgencyPolicy
	now            func() time.Time
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(assignmentRepo portsrepo.AssignmentRepositoryFacade, hierarchySvc portssvc.HierarchySvcFacade, pricingSvc portssvc.PricingSvcFacade, settlementSvc portssvc.SettlementSvcFacade, policy domain.UrgencyPolicy) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		hierarchySvc:   hierarchySvc,
		pricingSvc:     pricingSvc,
		settlementSvc:  settlementSvc,
		policy:         policy,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// CreateAssignment resolves the party chain, prices the request and freezes the
// breakdown into a new assignment at version 1.
func (s *assignmentService) CreateAssignment(ctx context.Context, clientID string, req dto.CreateAssignmentRequest) (*domain.Assignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	chain, err := s.hierarchySvc.ResolveChain(ctx, clientID, req.SuperWorkerID, req.WorkerID)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.pricingSvc.QuoteForClient(ctx, clientID, dto.QuoteRequest{
		WordCount: req.WordCount,
		Deadline:  req.Deadline,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	assignment := domain.Assignment{
		AssignmentID: uuid.NewString(),
		ClientID:     clientID,
		Chain:        *chain,
		Title:        req.Title,
		WordCount:    req.WordCount,
		RequestedAt:  now,
		Deadline:     req.Deadline,
		Breakdown:    *breakdown,
		Status:       domain.StatusRequested,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     clientID,
			LastUpdatedAt: now,
			LastUpdatedBy: clientID,
		},
	}

	if err := s.assignmentRepo.SaveAssignment(ctx, assignment); err != nil {
		logger.Error("Failed to save assignment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	logger.Info("Assignment created",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("client_id", clientID),
		slog.String("total_gbp", breakdown.TotalPriceGBP.String()),
	)
	return &assignment, nil
}

// GetAssignment retrieves one assignment.
func (s *assignmentService) GetAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}
	return assignment, nil
}

// ListAssignmentsByClient retrieves a paginated list of a client's assignments.
func (s *assignmentService) ListAssignmentsByClient(ctx context.Context, clientID string, params dto.ListAssignmentsParams) (*dto.ListAssignmentsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	assignments, nextToken, err := s.assignmentRepo.ListAssignmentsByClient(ctx, clientID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]dto.AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = dto.ToAssignmentResponse(&assignments[i])
	}
	return &dto.ListAssignmentsResponse{Assignments: responses, NextToken: nextToken}, nil
}

// TransitionStatus moves an assignment to a new status under the version token.
// Reaching a payable status triggers settlement; reaching Refunded emits the
// compensating set. A settlement failure after the status write is surfaced to
// the caller and logged for manual reconciliation; no partial records exist
// because the set is written atomically.
func (s *assignmentService) TransitionStatus(ctx context.Context, assignmentID string, req dto.TransitionStatusRequest, actorID string) (*domain.Assignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}

	if !assignment.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", apperrors.ErrConflict, assignment.Status, req.Status)
	}

	now := s.now()
	if err := s.assignmentRepo.UpdateAssignmentStatus(ctx, assignmentID, req.Status, req.Version, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrStaleVersion) {
			logger.Warn("Concurrent modification detected on status transition",
				slog.String("assignment_id", assignmentID), slog.Int64("expected_version", req.Version))
		}
		return nil, err
	}

	assignment.Status = req.Status
	assignment.Version = req.Version + 1
	assignment.LastUpdatedAt = now
	assignment.LastUpdatedBy = actorID

	switch {
	case req.Status.Payable():
		if _, err := s.settlementSvc.SettleAssignment(ctx, assignmentID, actorID); err != nil {
			logger.Error("Settlement failed after status transition, manual reconciliation required",
				slog.String("assignment_id", assignmentID), slog.String("error", err.Error()))
			return nil, err
		}
	case req.Status == domain.StatusRefunded:
		if _, err := s.settlementSvc.CompensateAssignment(ctx, assignmentID, actorID); err != nil {
			logger.Error("Compensation failed after refund transition, manual reconciliation required",
				slog.String("assignment_id", assignmentID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	logger.Info("Assignment status updated",
		slog.String("assignment_id", assignmentID), slog.String("status", string(req.Status)))
	return assignment, nil
}

// ApproveWordCountAdjustment re-prices the assignment at the approved word count
// and freezes the replacement breakdown. The day gap of the original request
// still selects the urgency rule, so an adjustment never re-tiers urgency. Only
// allowed before settlement; settled assignments go through refund instead.
func (s *assignmentService) ApproveWordCountAdjustment(ctx context.Context, assignmentID string, req dto.AdjustWordCountRequest, actorID string) (*domain.Assignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}
	if assignment.Status.Terminal() {
		return nil, fmt.Errorf("%w: assignment %s is %s", apperrors.ErrConflict, assignmentID, assignment.Status)
	}

	source, err := s.hierarchySvc.EffectivePricingSource(ctx, assignment.ClientID)
	if err != nil {
		return nil, err
	}

	breakdown, err := ComputeBreakdown(*source, s.policy, req.WordCount, assignment.RequestedAt, assignment.Deadline)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.assignmentRepo.ReplaceBreakdown(ctx, assignmentID, req.WordCount, *breakdown, req.Version, actorID, now); err != nil {
		if errors.Is(err, apperrors.ErrStaleVersion) {
			logger.Warn("Concurrent modification detected on word count adjustment",
				slog.String("assignment_id", assignmentID), slog.Int64("expected_version", req.Version))
		}
		return nil, err
	}

	assignment.WordCount = req.WordCount
	assignment.Breakdown = *breakdown
	assignment.Version = req.Version + 1
	assignment.LastUpdatedAt = now
	assignment.LastUpdatedBy = actorID

	logger.Info("Word count adjustment applied",
		slog.String("assignment_id", assignmentID),
		slog.Int("word_count", req.WordCount),
		slog.String("total_gbp", breakdown.TotalPriceGBP.String()),
	)
	return assignment, nil
}
