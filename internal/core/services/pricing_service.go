package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// ComputeBreakdown is the pure pricing function: given an effective pricing
// source, an urgency policy, and the quote inputs, it produces a deterministic
// PriceBreakdown. Identical inputs always yield an identical breakdown.
//
// All arithmetic stays in exact decimals; the 2-digit rounding is applied only
// to the final total, never to intermediate values, so per-step rounding drift
// cannot accumulate. A percentage urgency surcharge applies to the pre-urgency
// subtotal (base price plus agent fee) under both table kinds.
func ComputeBreakdown(source domain.PricingSource, policy domain.UrgencyPolicy, wordCount int, requestDate, deadline time.Time) (*domain.PriceBreakdown, error) {
	if wordCount <= 0 {
		return nil, fmt.Errorf("%w: word count must be positive", apperrors.ErrValidation)
	}
	if !deadline.After(requestDate) {
		return nil, fmt.Errorf("%w: deadline must be after the request date", apperrors.ErrValidation)
	}

	var basePrice, agentFee decimal.Decimal
	switch {
	case source.Fixed != nil:
		price, err := source.Fixed.PriceFor(wordCount)
		if err != nil {
			return nil, err
		}
		basePrice = price
	case source.AgentRate != nil:
		table := source.AgentRate
		if wordCount < table.MinWords {
			return nil, fmt.Errorf("%w: word count below the table minimum of %d", apperrors.ErrValidation, table.MinWords)
		}
		if table.MaxWords != 0 && wordCount > table.MaxWords {
			return nil, fmt.Errorf("%w: %d words", apperrors.ErrOutOfRangeWordCount, wordCount)
		}
		units := int64(wordCount / 500)
		if wordCount%500 != 0 {
			units++
		}
		basePrice = table.BaseRatePer500Words.Mul(decimal.NewFromInt(units))
		agentFee = basePrice.Mul(table.AgentFeePercent).Div(decimal.NewFromInt(100))
	default:
		return nil, fmt.Errorf("%w: no pricing source", apperrors.ErrInternal)
	}

	rule, err := policy.Select(domain.DayGap(requestDate, deadline))
	if err != nil {
		return nil, err
	}
	urgencyCharge := rule.Charge(basePrice.Add(agentFee))

	total := basePrice.Add(agentFee).Add(urgencyCharge).Round(2)

	return &domain.PriceBreakdown{
		BasePriceGBP:     basePrice,
		AgentFeeGBP:      agentFee,
		UrgencyChargeGBP: urgencyCharge,
		TotalPriceGBP:    total,
		UrgencyLevel:     rule.Level,
	}, nil
}

// pricingService computes quotes and manages agent rate tables.
type pricingService struct {
	hierarchySvc portssvc.HierarchySvcFacade
	pricingRepo  portsrepo.PricingRepositoryFacade
	partyRepo    portsrepo.PartyRepositoryFacade
	policy       domain.UrgencyPolicy
	now          func() time.Time
}

// NewPricingService creates a new pricing service using the given urgency policy.
func NewPricingService(hierarchySvc portssvc.HierarchySvcFacade, pricingRepo portsrepo.PricingRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade, policy domain.UrgencyPolicy) portssvc.PricingSvcFacade {
	return &pricingService{
		hierarchySvc: hierarchySvc,
		pricingRepo:  pricingRepo,
		partyRepo:    partyRepo,
		policy:       policy,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

// QuoteForClient resolves the client's effective pricing source and prices the
// request. Side-effect free; concurrent callers may simply repeat it.
func (s *pricingService) QuoteForClient(ctx context.Context, clientID string, req dto.QuoteRequest) (*domain.PriceBreakdown, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.hierarchySvc.EffectivePricingSource(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrHierarchyUnassigned) {
			logger.Error("Failed to resolve pricing source", slog.String("client_id", clientID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	breakdown, err := ComputeBreakdown(*source, s.policy, req.WordCount, s.now(), req.Deadline)
	if err != nil {
		return nil, err
	}

	logger.Debug("Quote computed",
		slog.String("client_id", clientID),
		slog.Int("word_count", req.WordCount),
		slog.String("total_gbp", breakdown.TotalPriceGBP.String()),
		slog.String("urgency", string(breakdown.UrgencyLevel)),
	)
	return breakdown, nil
}

// UpsertAgentRateTable creates or replaces an agent's custom pricing table.
func (s *pricingService) UpsertAgentRateTable(ctx context.Context, agentID string, req dto.UpsertAgentRateTableRequest, actorID string) (*domain.AgentRateTable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	agent, err := s.partyRepo.FindPartyByID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find agent %s: %w", agentID, err)
	}
	if agent.Role != domain.RoleAgent {
		return nil, fmt.Errorf("%w: party %s is not an agent", apperrors.ErrValidation, agentID)
	}

	now := s.now()
	table := domain.AgentRateTable{
		AgentID:             agentID,
		MinWords:            req.MinWords,
		MaxWords:            req.MaxWords,
		BaseRatePer500Words: req.BaseRatePer500Words,
		AgentFeePercent:     req.AgentFeePercent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	if err := s.pricingRepo.SaveAgentRateTable(ctx, table); err != nil {
		logger.Error("Failed to save agent rate table", slog.String("agent_id", agentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save agent rate table: %w", err)
	}

	logger.Info("Agent rate table saved", slog.String("agent_id", agentID))
	return &table, nil
}

// GetAgentRateTable retrieves an agent's custom pricing table.
func (s *pricingService) GetAgentRateTable(ctx context.Context, agentID string) (*domain.AgentRateTable, error) {
	table, err := s.pricingRepo.FindAgentRateTable(ctx, agentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: agent %s", apperrors.ErrPricingConfigMissing, agentID)
		}
		return nil, fmt.Errorf("failed to find agent rate table: %w", err)
	}
	return table, nil
}
