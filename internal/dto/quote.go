package dto

import (
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuoteRequest defines the payload for a stateless price preview. The requester
// is taken from the authenticated context, not the body.
type QuoteRequest struct {
	WordCount int       `json:"wordCount" binding:"required,gt=0"`
	Deadline  time.Time `json:"deadline" binding:"required"`
}

// PriceBreakdownResponse mirrors the frozen quote result.
type PriceBreakdownResponse struct {
	BasePriceGBP     decimal.Decimal     `json:"basePriceGBP"`
	AgentFeeGBP      decimal.Decimal     `json:"agentFeeGBP"`
	UrgencyChargeGBP decimal.Decimal     `json:"urgencyChargeGBP"`
	TotalPriceGBP    decimal.Decimal     `json:"totalPriceGBP"`
	UrgencyLevel     domain.UrgencyLevel `json:"urgencyLevel"`
	TotalPriceINR    *decimal.Decimal    `json:"totalPriceINR,omitempty"`
	RateStale        bool                `json:"rateStale,omitempty"`
}

// ToPriceBreakdownResponse converts a domain breakdown, optionally attaching a
// display INR total and its staleness flag.
func ToPriceBreakdownResponse(b domain.PriceBreakdown, inr *decimal.Decimal, stale bool) PriceBreakdownResponse {
	return PriceBreakdownResponse{
		BasePriceGBP:     b.BasePriceGBP,
		AgentFeeGBP:      b.AgentFeeGBP,
		UrgencyChargeGBP: b.UrgencyChargeGBP,
		TotalPriceGBP:    b.TotalPriceGBP,
		UrgencyLevel:     b.UrgencyLevel,
		TotalPriceINR:    inr,
		RateStale:        stale,
	}
}
