package services

import (
	"context"
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade converts GBP amounts to INR. Rate resolution order is fixed:
// explicit per-request rate, then the configured static rate, then the last
// cached live rate. Settlement conversions fail hard without a fresh rate;
// display conversions may fall back to a stale cached rate, flagged as such.
type CurrencySvcFacade interface {
	// ConvertForSettlement returns the INR amount and the snapshot that must be
	// stored with the settlement. Fails with ErrRateUnavailable when no
	// non-stale rate can be resolved.
	ConvertForSettlement(ctx context.Context, amountGBP decimal.Decimal, explicitRate *decimal.Decimal) (decimal.Decimal, *domain.ExchangeRateSnapshot, error)
	// ConvertForDisplay behaves like ConvertForSettlement but will serve a stale
	// cached rate with Stale set rather than failing.
	ConvertForDisplay(ctx context.Context, amountGBP decimal.Decimal) (decimal.Decimal, *domain.ExchangeRateSnapshot, error)
	// CurrentRate reports the rate a conversion would use right now.
	CurrentRate(ctx context.Context) (*domain.ExchangeRateSnapshot, error)
	// StoreLiveRate persists a freshly fetched live rate into the cache.
	StoreLiveRate(ctx context.Context, rate decimal.Decimal, asOf time.Time) error
}
