package services

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/inkledger/inkledger_backend/internal/dto"
)

// PricingSvcFacade computes quotes and manages agent custom tables.
type PricingSvcFacade interface {
	// QuoteForClient resolves the client's effective pricing source and computes
	// a deterministic price breakdown. Read-only and repeatable: identical
	// inputs against the same table snapshot yield an identical breakdown.
	QuoteForClient(ctx context.Context, clientID string, req dto.QuoteRequest) (*domain.PriceBreakdown, error)
	UpsertAgentRateTable(ctx context.Context, agentID string, req dto.UpsertAgentRateTableRequest, actorID string) (*domain.AgentRateTable, error)
	GetAgentRateTable(ctx context.Context, agentID string) (*domain.AgentRateTable, error)
}
