package services

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// HierarchySvcFacade resolves a party's position in the recruitment hierarchy
// into the chain of financial parties and the effective pricing source.
type HierarchySvcFacade interface {
	// ResolveChain walks exactly one hop on each side: client to its agent or
	// super agent, super worker (with optional sub-worker) on the worker side.
	ResolveChain(ctx context.Context, clientID, superWorkerID string, workerID *string) (*domain.HierarchyChain, error)
	// EffectivePricingSource returns the agent rate table when the client was
	// recruited by an agent, the fixed super-agent table otherwise. An agent
	// with no configured table yields the documented default table and no error.
	EffectivePricingSource(ctx context.Context, clientID string) (*domain.PricingSource, error)
}
