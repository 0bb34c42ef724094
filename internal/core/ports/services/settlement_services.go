package services

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// SettlementSvcFacade decomposes a finalized assignment's frozen price into
// per-party ledger entries. Record sets are written atomically; a conservation
// violation halts settlement for that assignment instead of emitting mismatched
// records.
type SettlementSvcFacade interface {
	// SettleAssignment computes and persists the settlement set for an
	// assignment in a payable status. Idempotent: if an original set already
	// exists it is returned unchanged.
	SettleAssignment(ctx context.Context, assignmentID string, actorID string) ([]domain.SettlementRecord, error)
	// CompensateAssignment emits negated copies of the original settlement set,
	// preserving the ledger's audit trail on refund.
	CompensateAssignment(ctx context.Context, assignmentID string, actorID string) ([]domain.SettlementRecord, error)
	GetSettlementsForAssignment(ctx context.Context, assignmentID string) ([]domain.SettlementRecord, error)
}
