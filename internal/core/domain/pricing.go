package domain

import (
	"fmt"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PricingBand maps a contiguous word-count range to a fixed GBP price.
// UpperWords == 0 marks an unbounded terminal band: any word count at or above
// LowerWords resolves to this band's price. A table without a terminal band
// rejects word counts above its highest band.
type PricingBand struct {
	LowerWords int             `json:"lowerWords"`
	UpperWords int             `json:"upperWords"`
	PriceGBP   decimal.Decimal `json:"priceGBP"`
}

// Unbounded reports whether the band has no upper word limit.
func (b PricingBand) Unbounded() bool {
	return b.UpperWords == 0
}

// Covers reports whether wordCount falls inside the band.
func (b PricingBand) Covers(wordCount int) bool {
	if wordCount < b.LowerWords {
		return false
	}
	return b.Unbounded() || wordCount <= b.UpperWords
}

// FixedPricingTable is the banded table owned by the super agent. Bands are
// contiguous, non-overlapping and sorted ascending.
type FixedPricingTable struct {
	OwnerID string        `json:"ownerID"`
	Bands   []PricingBand `json:"bands"`
}

// Validate checks the structural invariants of the band list: at least one band,
// positive bounds, contiguity, ascending order, and monotonically non-decreasing
// prices. Only the last band may be unbounded.
func (t FixedPricingTable) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("%w: pricing table has no bands", apperrors.ErrValidation)
	}
	for i, band := range t.Bands {
		if band.LowerWords <= 0 {
			return fmt.Errorf("%w: band %d lower bound must be positive", apperrors.ErrValidation, i)
		}
		if band.Unbounded() {
			if i != len(t.Bands)-1 {
				return fmt.Errorf("%w: only the last band may be unbounded", apperrors.ErrValidation)
			}
			continue
		}
		if band.UpperWords < band.LowerWords {
			return fmt.Errorf("%w: band %d upper bound below lower bound", apperrors.ErrValidation, i)
		}
		if i > 0 {
			prev := t.Bands[i-1]
			if band.LowerWords != prev.UpperWords+1 {
				return fmt.Errorf("%w: band %d is not contiguous with its predecessor", apperrors.ErrValidation, i)
			}
			if band.PriceGBP.LessThan(prev.PriceGBP) {
				return fmt.Errorf("%w: band %d price decreases", apperrors.ErrValidation, i)
			}
		}
	}
	return nil
}

// PriceFor returns the price of the smallest band covering wordCount. Banding
// rounds up, never interpolates. Word counts above the highest bounded band fail
// with ErrOutOfRangeWordCount unless a terminal unbounded band is configured.
func (t FixedPricingTable) PriceFor(wordCount int) (decimal.Decimal, error) {
	if wordCount <= 0 {
		return decimal.Zero, fmt.Errorf("%w: word count must be positive", apperrors.ErrValidation)
	}
	for _, band := range t.Bands {
		if band.Covers(wordCount) {
			return band.PriceGBP, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %d words", apperrors.ErrOutOfRangeWordCount, wordCount)
}

// AgentRateTable is an agent's custom pricing source: a rate function over 500-word
// units plus the agent's fee percentage, rather than discrete bands.
type AgentRateTable struct {
	AgentID             string          `json:"agentID"`
	MinWords            int             `json:"minWords"`
	MaxWords            int             `json:"maxWords"` // 0 means no ceiling
	BaseRatePer500Words decimal.Decimal `json:"baseRatePer500Words"`
	AgentFeePercent     decimal.Decimal `json:"agentFeePercent"`
	AuditFields
}

// Validate checks the rate table's bounds and rates.
func (t AgentRateTable) Validate() error {
	if t.MinWords < 0 || (t.MaxWords != 0 && t.MaxWords < t.MinWords) {
		return fmt.Errorf("%w: invalid word count bounds", apperrors.ErrValidation)
	}
	if t.BaseRatePer500Words.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: base rate must be positive", apperrors.ErrValidation)
	}
	if t.AgentFeePercent.IsNegative() || t.AgentFeePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: agent fee percent must be within [0,100]", apperrors.ErrValidation)
	}
	return nil
}

// PricingSource is the effective pricing input for a quote: exactly one of the
// fixed super-agent table or an agent's rate table.
type PricingSource struct {
	Fixed     *FixedPricingTable
	AgentRate *AgentRateTable
}

// PriceBreakdown is the immutable result of a quote. It is computed at quote time
// and persisted unchanged once the assignment is created; an approved word-count
// adjustment produces a replacement breakdown, never a mutation.
type PriceBreakdown struct {
	BasePriceGBP     decimal.Decimal `json:"basePriceGBP"`
	AgentFeeGBP      decimal.Decimal `json:"agentFeeGBP"`
	UrgencyChargeGBP decimal.Decimal `json:"urgencyChargeGBP"`
	TotalPriceGBP    decimal.Decimal `json:"totalPriceGBP"`
	UrgencyLevel     UrgencyLevel    `json:"urgencyLevel"`
}

// Consistent reports whether the breakdown's components sum exactly to its total
// after the final 2-digit rounding. Settlement refuses to run on a breakdown that
// fails this check.
func (b PriceBreakdown) Consistent() bool {
	sum := b.BasePriceGBP.Add(b.AgentFeeGBP).Add(b.UrgencyChargeGBP).Round(2)
	return sum.Equal(b.TotalPriceGBP)
}

// DefaultSuperAgentTable returns the documented fallback fixed table. It is used
// as the system-wide super-agent table when none is supplied via configuration,
// and as the substitute source when an agent has no custom table configured.
// The table has a bounded ceiling: quotes above the last band fail loudly.
func DefaultSuperAgentTable(ownerID string) FixedPricingTable {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return FixedPricingTable{
		OwnerID: ownerID,
		Bands: []PricingBand{
			{LowerWords: 1, UpperWords: 500, PriceGBP: price("45")},
			{LowerWords: 501, UpperWords: 1000, PriceGBP: price("55")},
			{LowerWords: 1001, UpperWords: 1500, PriceGBP: price("65")},
			{LowerWords: 1501, UpperWords: 2000, PriceGBP: price("75")},
			{LowerWords: 2001, UpperWords: 2500, PriceGBP: price("85")},
			{LowerWords: 2501, UpperWords: 3000, PriceGBP: price("95")},
		},
	}
}
