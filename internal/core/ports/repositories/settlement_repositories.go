package repositories

import (
	"context"
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// SettlementRepositoryFacade is the append-only settlement ledger.
type SettlementRepositoryFacade interface {
	// SaveSettlementSet writes all records for one assignment atomically:
	// either every role's record lands or none does.
	SaveSettlementSet(ctx context.Context, records []domain.SettlementRecord) error
	FindSettlementsByAssignmentID(ctx context.Context, assignmentID string) ([]domain.SettlementRecord, error)
	// SumSettlementsByPayee aggregates ledger entries by computedAt window.
	// Compensating records sum in as ordinary negative entries.
	SumSettlementsByPayee(ctx context.Context, payeeID string, role domain.Role, from, to time.Time) (domain.SettlementTotals, error)
	// MonthlySettlementTotals returns per-month totals within the window,
	// ascending by month.
	MonthlySettlementTotals(ctx context.Context, payeeID string, role domain.Role, from, to time.Time) ([]domain.MonthlyTotals, error)
}
