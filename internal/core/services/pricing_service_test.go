package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/inkledger/inkledger_backend/internal/core/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
)

func gbp(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedSource() domain.PricingSource {
	table := domain.DefaultSuperAgentTable("sa-1")
	return domain.PricingSource{Fixed: &table}
}

func agentSource(rate, feePercent string) domain.PricingSource {
	return domain.PricingSource{AgentRate: &domain.AgentRateTable{
		AgentID:             "agent-1",
		MaxWords:            100000,
		BaseRatePer500Words: gbp(rate),
		AgentFeePercent:     gbp(feePercent),
	}}
}

func TestComputeBreakdownFixedTable(t *testing.T) {
	policy := domain.DefaultUrgencyPolicy()
	requested := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("no urgency beyond a week", func(t *testing.T) {
		b, err := services.ComputeBreakdown(fixedSource(), policy, 750, requested, requested.AddDate(0, 0, 14))
		require.NoError(t, err)
		assert.True(t, gbp("55").Equal(b.BasePriceGBP))
		assert.True(t, b.AgentFeeGBP.IsZero())
		assert.True(t, b.UrgencyChargeGBP.IsZero())
		assert.True(t, gbp("55").Equal(b.TotalPriceGBP))
		assert.Equal(t, domain.UrgencyNormal, b.UrgencyLevel)
	})

	t.Run("rush surcharge within a day", func(t *testing.T) {
		b, err := services.ComputeBreakdown(fixedSource(), policy, 750, requested, requested.Add(20*time.Hour))
		require.NoError(t, err)
		assert.True(t, gbp("30").Equal(b.UrgencyChargeGBP))
		assert.True(t, gbp("85").Equal(b.TotalPriceGBP))
		assert.Equal(t, domain.UrgencyRush, b.UrgencyLevel)
	})

	t.Run("band boundary rounds up", func(t *testing.T) {
		atBoundary, err := services.ComputeBreakdown(fixedSource(), policy, 500, requested, requested.AddDate(0, 0, 14))
		require.NoError(t, err)
		pastBoundary, err2 := services.ComputeBreakdown(fixedSource(), policy, 501, requested, requested.AddDate(0, 0, 14))
		require.NoError(t, err2)
		assert.True(t, gbp("45").Equal(atBoundary.TotalPriceGBP))
		assert.True(t, gbp("55").Equal(pastBoundary.TotalPriceGBP))
	})

	t.Run("out of range word count", func(t *testing.T) {
		_, err := services.ComputeBreakdown(fixedSource(), policy, 3001, requested, requested.AddDate(0, 0, 14))
		assert.ErrorIs(t, err, apperrors.ErrOutOfRangeWordCount)
	})
}

func TestComputeBreakdownAgentTable(t *testing.T) {
	policy := domain.DefaultUrgencyPolicy()
	requested := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := requested.AddDate(0, 0, 14)

	// 1000 words at £6.25 per 500-word unit with a 15% fee: base £12.50,
	// fee £1.875 kept exact, total rounded only at the end.
	b, err := services.ComputeBreakdown(agentSource("6.25", "15"), policy, 1000, requested, deadline)
	require.NoError(t, err)
	assert.True(t, gbp("12.50").Equal(b.BasePriceGBP), "base: %s", b.BasePriceGBP)
	assert.True(t, gbp("1.875").Equal(b.AgentFeeGBP), "fee: %s", b.AgentFeeGBP)
	assert.True(t, gbp("14.38").Equal(b.TotalPriceGBP), "total: %s", b.TotalPriceGBP)
	assert.True(t, b.Consistent())

	// A started unit charges in full.
	b2, err := services.ComputeBreakdown(agentSource("6.25", "15"), policy, 1001, requested, deadline)
	require.NoError(t, err)
	assert.True(t, gbp("18.75").Equal(b2.BasePriceGBP))
}

func TestComputeBreakdownAgentTableBounds(t *testing.T) {
	policy := domain.DefaultUrgencyPolicy()
	requested := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := requested.AddDate(0, 0, 14)

	source := domain.PricingSource{AgentRate: &domain.AgentRateTable{
		AgentID:             "agent-1",
		MinWords:            500,
		MaxWords:            2000,
		BaseRatePer500Words: gbp("6.25"),
	}}

	_, err := services.ComputeBreakdown(source, policy, 499, requested, deadline)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = services.ComputeBreakdown(source, policy, 2001, requested, deadline)
	assert.ErrorIs(t, err, apperrors.ErrOutOfRangeWordCount)
}

func TestComputeBreakdownDeterministic(t *testing.T) {
	policy := domain.DefaultUrgencyPolicy()
	requested := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	deadline := requested.AddDate(0, 0, 2)

	first, err := services.ComputeBreakdown(agentSource("6.25", "15"), policy, 1000, requested, deadline)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := services.ComputeBreakdown(agentSource("6.25", "15"), policy, 1000, requested, deadline)
		require.NoError(t, err)
		assert.True(t, first.TotalPriceGBP.Equal(again.TotalPriceGBP))
		assert.Equal(t, first.UrgencyLevel, again.UrgencyLevel)
	}
}

func TestComputeBreakdownInvalidInputs(t *testing.T) {
	policy := domain.DefaultUrgencyPolicy()
	requested := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := services.ComputeBreakdown(fixedSource(), policy, 0, requested, requested.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = services.ComputeBreakdown(fixedSource(), policy, 500, requested, requested.Add(-time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpsertAgentRateTable(t *testing.T) {
	ctx := context.Background()
	mockPartyRepo := new(MockPartyRepository)
	mockPricingRepo := new(MockPricingRepository)
	hierarchySvc := services.NewHierarchyService(mockPartyRepo, mockPricingRepo, domain.DefaultSuperAgentTable("system"))
	svc := services.NewPricingService(hierarchySvc, mockPricingRepo, mockPartyRepo, domain.DefaultUrgencyPolicy())

	agent := &domain.Party{PartyID: "agent-1", Role: domain.RoleAgent}
	mockPartyRepo.On("FindPartyByID", ctx, "agent-1").Return(agent, nil)
	mockPricingRepo.On("SaveAgentRateTable", ctx, mock.MatchedBy(func(table domain.AgentRateTable) bool {
		return table.AgentID == "agent-1" && table.BaseRatePer500Words.Equal(gbp("6.25"))
	})).Return(nil).Once()

	table, err := svc.UpsertAgentRateTable(ctx, "agent-1", dto.UpsertAgentRateTableRequest{
		MaxWords:            10000,
		BaseRatePer500Words: gbp("6.25"),
		AgentFeePercent:     gbp("15"),
	}, "sa-1")
	require.NoError(t, err)
	assert.Equal(t, "agent-1", table.AgentID)
	mockPricingRepo.AssertExpectations(t)

	// Invalid rate never reaches the repository.
	_, err = svc.UpsertAgentRateTable(ctx, "agent-1", dto.UpsertAgentRateTableRequest{
		BaseRatePer500Words: decimal.Zero,
	}, "sa-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Non-agent parties are rejected.
	client := &domain.Party{PartyID: "client-1", Role: domain.RoleClient}
	mockPartyRepo.On("FindPartyByID", ctx, "client-1").Return(client, nil)
	_, err = svc.UpsertAgentRateTable(ctx, "client-1", dto.UpsertAgentRateTableRequest{
		BaseRatePer500Words: gbp("6.25"),
	}, "sa-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetAgentRateTableMissing(t *testing.T) {
	ctx := context.Background()
	mockPartyRepo := new(MockPartyRepository)
	mockPricingRepo := new(MockPricingRepository)
	hierarchySvc := services.NewHierarchyService(mockPartyRepo, mockPricingRepo, domain.DefaultSuperAgentTable("system"))
	svc := services.NewPricingService(hierarchySvc, mockPricingRepo, mockPartyRepo, domain.DefaultUrgencyPolicy())

	mockPricingRepo.On("FindAgentRateTable", ctx, "agent-1").Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetAgentRateTable(ctx, "agent-1")
	assert.ErrorIs(t, err, apperrors.ErrPricingConfigMissing)
}
