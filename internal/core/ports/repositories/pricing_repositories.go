package repositories

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// PricingRepositoryFacade persists agent custom rate tables. The fixed
// super-agent table is process configuration and never hits this repository.
type PricingRepositoryFacade interface {
	// FindAgentRateTable returns apperrors.ErrNotFound when the agent has no
	// custom table; callers substitute the documented default.
	FindAgentRateTable(ctx context.Context, agentID string) (*domain.AgentRateTable, error)
	SaveAgentRateTable(ctx context.Context, table domain.AgentRateTable) error
}
