package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// settlementService decomposes frozen assignment prices into per-party ledger
// entries.
type settlementService struct {
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	currencySvc    portssvc.CurrencySvcFacade
	now            func() time.Time
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(assignmentRepo portsrepo.AssignmentRepositoryFacade, settlementRepo portsrepo.SettlementRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.SettlementSvcFacade {
	return &settlementService{
		assignmentRepo: assignmentRepo,
		settlementRepo: settlementRepo,
		currencySvc:    currencySvc,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// buildSettlementSet computes the full settlement set for an assignment. The
// conservation invariant is re-verified on the computed amounts before anything
// is returned: super agent net profit plus super worker earnings plus the agent
// fee must equal the frozen total to the cent, exactly.
func (s *settlementService) buildSettlementSet(ctx context.Context, assignment *domain.Assignment, actorID string) ([]domain.SettlementRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	breakdown := assignment.Breakdown
	if !breakdown.Consistent() {
		logger.Error("Frozen breakdown does not reconcile, halting settlement for manual audit",
			slog.String("assignment_id", assignment.AssignmentID),
			slog.String("base_gbp", breakdown.BasePriceGBP.String()),
			slog.String("agent_fee_gbp", breakdown.AgentFeeGBP.String()),
			slog.String("urgency_gbp", breakdown.UrgencyChargeGBP.String()),
			slog.String("total_gbp", breakdown.TotalPriceGBP.String()),
		)
		return nil, fmt.Errorf("%w: frozen breakdown for assignment %s", apperrors.ErrSettlementInconsistent, assignment.AssignmentID)
	}

	chain := assignment.Chain
	if err := chain.Validate(); err != nil {
		return nil, err
	}

	swEarnings := domain.SuperWorkerEarnings(assignment.WordCount)
	swEarningsINR, rateSnapshot, err := s.currencySvc.ConvertForSettlement(ctx, swEarnings, nil)
	if err != nil {
		// Super worker payments are displayed in INR; settlement cannot
		// proceed without a trustworthy rate.
		return nil, err
	}

	agentFee := decimal.Zero
	if chain.RoutedThroughAgent() {
		agentFee = breakdown.AgentFeeGBP
	}
	superAgentNet := breakdown.TotalPriceGBP.Sub(swEarnings).Sub(agentFee)

	// Conservation check. Derived as it is, a violation here means a bug in
	// the frozen breakdown or chain resolution; never emit mismatched records.
	if !superAgentNet.Add(swEarnings).Add(agentFee).Equal(breakdown.TotalPriceGBP) {
		logger.Error("Settlement conservation violated, halting for manual audit",
			slog.String("assignment_id", assignment.AssignmentID),
			slog.String("super_agent_net", superAgentNet.String()),
			slog.String("super_worker_earnings", swEarnings.String()),
			slog.String("agent_fee", agentFee.String()),
			slog.String("total", breakdown.TotalPriceGBP.String()),
		)
		return nil, fmt.Errorf("%w: assignment %s", apperrors.ErrSettlementInconsistent, assignment.AssignmentID)
	}

	now := s.now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}

	records := []domain.SettlementRecord{
		{
			SettlementID: uuid.NewString(),
			AssignmentID: assignment.AssignmentID,
			PayeeRole:    domain.RoleSuperWorker,
			PayeeID:      chain.SuperWorkerID,
			EarningsGBP:  swEarnings,
			EarningsINR:  &swEarningsINR,
			FeesPaidGBP:  decimal.Zero,
			NetProfitGBP: swEarnings,
			RateSnapshot: rateSnapshot,
			Kind:         domain.SettlementOriginal,
			ComputedAt:   now,
			AuditFields:  audit,
		},
	}

	if chain.RoutedThroughAgent() {
		records = append(records, domain.SettlementRecord{
			SettlementID: uuid.NewString(),
			AssignmentID: assignment.AssignmentID,
			PayeeRole:    domain.RoleAgent,
			PayeeID:      *chain.AgentID,
			EarningsGBP:  agentFee,
			FeesPaidGBP:  decimal.Zero,
			NetProfitGBP: agentFee,
			Kind:         domain.SettlementOriginal,
			ComputedAt:   now,
			AuditFields:  audit,
		})
	}

	records = append(records, domain.SettlementRecord{
		SettlementID: uuid.NewString(),
		AssignmentID: assignment.AssignmentID,
		PayeeRole:    domain.RoleSuperAgent,
		PayeeID:      chain.SuperAgentID,
		EarningsGBP:  breakdown.TotalPriceGBP,
		FeesPaidGBP:  swEarnings.Add(agentFee),
		NetProfitGBP: superAgentNet,
		Kind:         domain.SettlementOriginal,
		ComputedAt:   now,
		AuditFields:  audit,
	})

	return records, nil
}

// SettleAssignment computes and atomically persists the settlement set for an
// assignment in a payable status. Re-settling an already settled assignment
// returns the existing records unchanged.
func (s *settlementService) SettleAssignment(ctx context.Context, assignmentID string, actorID string) ([]domain.SettlementRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}
	if !assignment.Status.Payable() {
		return nil, fmt.Errorf("%w: assignment %s status is %s, not payable", apperrors.ErrConflict, assignmentID, assignment.Status)
	}

	existing, err := s.settlementRepo.FindSettlementsByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing settlements: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug("Assignment already settled, returning existing records",
			slog.String("assignment_id", assignmentID), slog.Int("record_count", len(existing)))
		return existing, nil
	}

	records, err := s.buildSettlementSet(ctx, assignment, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.settlementRepo.SaveSettlementSet(ctx, records); err != nil {
		logger.Error("Failed to persist settlement set", slog.String("assignment_id", assignmentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save settlement set: %w", err)
	}

	logger.Info("Assignment settled",
		slog.String("assignment_id", assignmentID),
		slog.Int("record_count", len(records)),
		slog.String("total_gbp", assignment.Breakdown.TotalPriceGBP.String()),
	)
	return records, nil
}

// CompensateAssignment emits negated copies of the original settlement set.
// The originals stay in the ledger untouched.
func (s *settlementService) CompensateAssignment(ctx context.Context, assignmentID string, actorID string) ([]domain.SettlementRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.settlementRepo.FindSettlementsByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements for %s: %w", assignmentID, err)
	}

	var originals []domain.SettlementRecord
	for _, record := range existing {
		switch record.Kind {
		case domain.SettlementCompensating:
			// Already compensated; refunds are not repeatable.
			return nil, fmt.Errorf("%w: assignment %s already compensated", apperrors.ErrConflict, assignmentID)
		case domain.SettlementOriginal:
			originals = append(originals, record)
		}
	}
	if len(originals) == 0 {
		return nil, fmt.Errorf("%w: no settlement to compensate for assignment %s", apperrors.ErrNotFound, assignmentID)
	}

	now := s.now()
	compensating := make([]domain.SettlementRecord, len(originals))
	for i, record := range originals {
		compensating[i] = record.Negated(uuid.NewString(), now, actorID)
	}

	if err := s.settlementRepo.SaveSettlementSet(ctx, compensating); err != nil {
		logger.Error("Failed to persist compensating settlement set", slog.String("assignment_id", assignmentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save compensating settlement set: %w", err)
	}

	logger.Info("Compensating settlement recorded",
		slog.String("assignment_id", assignmentID), slog.Int("record_count", len(compensating)))
	return compensating, nil
}

// GetSettlementsForAssignment returns all ledger entries for an assignment.
func (s *settlementService) GetSettlementsForAssignment(ctx context.Context, assignmentID string) ([]domain.SettlementRecord, error) {
	records, err := s.settlementRepo.FindSettlementsByAssignmentID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements for %s: %w", assignmentID, err)
	}
	return records, nil
}
