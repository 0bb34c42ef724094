package dto

import (
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateResponse exposes the currently effective GBP→INR rate and its provenance.
type RateResponse struct {
	Rate   decimal.Decimal   `json:"rate"`
	AsOf   time.Time         `json:"asOf"`
	Source domain.RateSource `json:"source"`
	Stale  bool              `json:"stale,omitempty"`
}

// UpdateCachedRateRequest stores a freshly fetched live rate into the cache.
// This is the boundary the excluded rate-feed poller writes through.
type UpdateCachedRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// ToRateResponse converts a domain exchange rate snapshot.
func ToRateResponse(s *domain.ExchangeRateSnapshot) RateResponse {
	return RateResponse{Rate: s.Rate, AsOf: s.AsOf, Source: s.Source, Stale: s.Stale}
}
