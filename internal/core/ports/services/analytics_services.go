package services

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/inkledger/inkledger_backend/internal/dto"
)

// AnalyticsSvcFacade aggregates settlement ledger entries into per-role windowed
// summaries. Pure aggregation; no side effects.
type AnalyticsSvcFacade interface {
	// Report sums the party's ledger entries whose computedAt falls inside the
	// window. Workers have no financial visibility and are rejected outright.
	Report(ctx context.Context, payeeID string, role domain.Role, q dto.AnalyticsQuery) (*domain.AnalyticsReport, error)
}
