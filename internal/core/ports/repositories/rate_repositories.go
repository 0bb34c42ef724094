package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateCacheFacade stores the last successfully fetched live GBP→INR rate. It is
// the lowest-priority rate source: explicit per-request rates and the configured
// static rate both win over it.
type RateCacheFacade interface {
	// FetchCachedRate returns apperrors.ErrNotFound when no live rate was ever
	// cached.
	FetchCachedRate(ctx context.Context) (rate decimal.Decimal, asOf time.Time, err error)
	StoreCachedRate(ctx context.Context, rate decimal.Decimal, asOf time.Time) error
}
