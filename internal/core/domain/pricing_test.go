package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

func gbp(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFixedPricingTablePriceFor(t *testing.T) {
	table := domain.DefaultSuperAgentTable("sa-1")
	require.NoError(t, table.Validate())

	// Banding rounds up: a band boundary belongs to the lower band, one word
	// past it already pays the next band's price.
	cases := []struct {
		words int
		want  string
	}{
		{1, "45"},
		{499, "45"},
		{500, "45"},
		{501, "55"},
		{1000, "55"},
		{1001, "65"},
		{3000, "95"},
	}
	for _, tc := range cases {
		price, err := table.PriceFor(tc.words)
		require.NoError(t, err, "words=%d", tc.words)
		assert.True(t, gbp(tc.want).Equal(price), "words=%d: want %s got %s", tc.words, tc.want, price)
	}
}

func TestFixedPricingTablePriceMonotonic(t *testing.T) {
	table := domain.DefaultSuperAgentTable("sa-1")
	prev := decimal.Zero
	for words := 1; words <= 3000; words += 137 {
		price, err := table.PriceFor(words)
		require.NoError(t, err)
		assert.False(t, price.LessThan(prev), "price decreased at %d words", words)
		prev = price
	}
}

func TestFixedPricingTableOutOfRange(t *testing.T) {
	table := domain.DefaultSuperAgentTable("sa-1")

	_, err := table.PriceFor(3001)
	assert.ErrorIs(t, err, apperrors.ErrOutOfRangeWordCount)

	_, err = table.PriceFor(0)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFixedPricingTableUnboundedTerminalBand(t *testing.T) {
	table := domain.FixedPricingTable{
		OwnerID: "sa-1",
		Bands: []domain.PricingBand{
			{LowerWords: 1, UpperWords: 500, PriceGBP: gbp("45")},
			{LowerWords: 501, UpperWords: 0, PriceGBP: gbp("60")},
		},
	}
	require.NoError(t, table.Validate())

	price, err := table.PriceFor(250000)
	require.NoError(t, err)
	assert.True(t, gbp("60").Equal(price))
}

func TestFixedPricingTableValidate(t *testing.T) {
	t.Run("gap between bands", func(t *testing.T) {
		table := domain.FixedPricingTable{Bands: []domain.PricingBand{
			{LowerWords: 1, UpperWords: 500, PriceGBP: gbp("45")},
			{LowerWords: 600, UpperWords: 1000, PriceGBP: gbp("55")},
		}}
		assert.ErrorIs(t, table.Validate(), apperrors.ErrValidation)
	})

	t.Run("price decreases", func(t *testing.T) {
		table := domain.FixedPricingTable{Bands: []domain.PricingBand{
			{LowerWords: 1, UpperWords: 500, PriceGBP: gbp("45")},
			{LowerWords: 501, UpperWords: 1000, PriceGBP: gbp("40")},
		}}
		assert.ErrorIs(t, table.Validate(), apperrors.ErrValidation)
	})

	t.Run("unbounded band not last", func(t *testing.T) {
		table := domain.FixedPricingTable{Bands: []domain.PricingBand{
			{LowerWords: 1, UpperWords: 0, PriceGBP: gbp("45")},
			{LowerWords: 501, UpperWords: 1000, PriceGBP: gbp("55")},
		}}
		assert.ErrorIs(t, table.Validate(), apperrors.ErrValidation)
	})

	t.Run("empty table", func(t *testing.T) {
		assert.ErrorIs(t, domain.FixedPricingTable{}.Validate(), apperrors.ErrValidation)
	})
}

func TestAgentRateTableValidate(t *testing.T) {
	valid := domain.AgentRateTable{
		AgentID:             "agent-1",
		MinWords:            0,
		MaxWords:            10000,
		BaseRatePer500Words: gbp("6.25"),
		AgentFeePercent:     gbp("15"),
	}
	assert.NoError(t, valid.Validate())

	zeroRate := valid
	zeroRate.BaseRatePer500Words = decimal.Zero
	assert.ErrorIs(t, zeroRate.Validate(), apperrors.ErrValidation)

	badBounds := valid
	badBounds.MinWords = 5000
	badBounds.MaxWords = 100
	assert.ErrorIs(t, badBounds.Validate(), apperrors.ErrValidation)

	feeOverflow := valid
	feeOverflow.AgentFeePercent = gbp("101")
	assert.ErrorIs(t, feeOverflow.Validate(), apperrors.ErrValidation)
}

func TestPriceBreakdownConsistent(t *testing.T) {
	consistent := domain.PriceBreakdown{
		BasePriceGBP:     gbp("12.50"),
		AgentFeeGBP:      gbp("1.875"),
		UrgencyChargeGBP: decimal.Zero,
		TotalPriceGBP:    gbp("14.38"),
	}
	assert.True(t, consistent.Consistent())

	tampered := consistent
	tampered.TotalPriceGBP = gbp("15.38")
	assert.False(t, tampered.Consistent())
}
