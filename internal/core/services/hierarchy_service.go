package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// hierarchyService resolves recruitment parent links into chains of financial
// parties. The parent graph is validated acyclic at registration time; this
// service only performs one-hop walks plus defensive terminal checks.
type hierarchyService struct {
	partyRepo   portsrepo.PartyRepositoryFacade
	pricingRepo portsrepo.PricingRepositoryFacade
	fixedTable  domain.FixedPricingTable
}

// NewHierarchyService creates a new hierarchy service. fixedTable is the
// system-wide super-agent table supplied through configuration.
func NewHierarchyService(partyRepo portsrepo.PartyRepositoryFacade, pricingRepo portsrepo.PricingRepositoryFacade, fixedTable domain.FixedPricingTable) portssvc.HierarchySvcFacade {
	return &hierarchyService{
		partyRepo:   partyRepo,
		pricingRepo: pricingRepo,
		fixedTable:  fixedTable,
	}
}

var _ portssvc.HierarchySvcFacade = (*hierarchyService)(nil)

// resolveClientSide walks Client → Agent → SuperAgent or Client → SuperAgent.
func (s *hierarchyService) resolveClientSide(ctx context.Context, clientID string) (superAgentID string, agent *domain.Party, err error) {
	client, err := s.partyRepo.FindPartyByID(ctx, clientID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	if client.Role != domain.RoleClient {
		return "", nil, fmt.Errorf("%w: party %s is not a client", apperrors.ErrValidation, clientID)
	}
	if client.ParentPartyID == nil || *client.ParentPartyID == "" {
		return "", nil, fmt.Errorf("%w: client %s has no recruitment parent", apperrors.ErrHierarchyUnassigned, clientID)
	}

	parent, err := s.partyRepo.FindPartyByID(ctx, *client.ParentPartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: client %s parent missing", apperrors.ErrHierarchyUnassigned, clientID)
		}
		return "", nil, fmt.Errorf("failed to find client parent: %w", err)
	}

	switch parent.Role {
	case domain.RoleSuperAgent:
		return parent.PartyID, nil, nil
	case domain.RoleAgent:
		if parent.ParentPartyID == nil || *parent.ParentPartyID == "" {
			return "", nil, fmt.Errorf("%w: agent %s has no super agent", apperrors.ErrHierarchyUnassigned, parent.PartyID)
		}
		return *parent.ParentPartyID, parent, nil
	default:
		return "", nil, fmt.Errorf("%w: client %s parented by role %s", apperrors.ErrHierarchyUnassigned, clientID, parent.Role)
	}
}

// ResolveChain resolves the financial parties behind one assignment.
func (s *hierarchyService) ResolveChain(ctx context.Context, clientID, superWorkerID string, workerID *string) (*domain.HierarchyChain, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	superAgentID, agent, err := s.resolveClientSide(ctx, clientID)
	if err != nil {
		return nil, err
	}

	superWorker, err := s.partyRepo.FindPartyByID(ctx, superWorkerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find super worker %s: %w", superWorkerID, err)
	}
	if superWorker.Role != domain.RoleSuperWorker {
		return nil, fmt.Errorf("%w: party %s is not a super worker", apperrors.ErrValidation, superWorkerID)
	}

	chain := domain.HierarchyChain{
		SuperAgentID:  superAgentID,
		SuperWorkerID: superWorkerID,
	}
	if agent != nil {
		agentID := agent.PartyID
		chain.AgentID = &agentID
	}

	if workerID != nil && *workerID != "" {
		worker, err := s.partyRepo.FindPartyByID(ctx, *workerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find worker %s: %w", *workerID, err)
		}
		if worker.Role != domain.RoleWorker {
			return nil, fmt.Errorf("%w: party %s is not a worker", apperrors.ErrValidation, *workerID)
		}
		if worker.ParentPartyID == nil || *worker.ParentPartyID != superWorkerID {
			return nil, fmt.Errorf("%w: worker %s does not belong to super worker %s", apperrors.ErrValidation, *workerID, superWorkerID)
		}
		chain.WorkerID = workerID
	}

	if err := chain.Validate(); err != nil {
		logger.Error("Resolved chain failed terminal check", slog.String("client_id", clientID), slog.String("error", err.Error()))
		return nil, err
	}
	return &chain, nil
}

// EffectivePricingSource determines which table prices a client's quote. A
// client recruited by an agent uses the agent's custom table; a missing custom
// table substitutes the documented default and logs a warning rather than
// failing the quote.
func (s *hierarchyService) EffectivePricingSource(ctx context.Context, clientID string) (*domain.PricingSource, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, agent, err := s.resolveClientSide(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if agent == nil {
		table := s.fixedTable
		return &domain.PricingSource{Fixed: &table}, nil
	}

	rateTable, err := s.pricingRepo.FindAgentRateTable(ctx, agent.PartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Agent has no custom pricing table, substituting default",
				slog.String("agent_id", agent.PartyID),
				slog.String("cause", apperrors.ErrPricingConfigMissing.Error()),
			)
			table := s.fixedTable
			return &domain.PricingSource{Fixed: &table}, nil
		}
		return nil, fmt.Errorf("failed to load agent rate table: %w", err)
	}

	return &domain.PricingSource{AgentRate: rateTable}, nil
}
