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
	"github.com/inkledger/inkledger_backend/internal/middleware"
)

// currencyService converts GBP to INR. Rates resolve in a fixed order: an
// explicit per-request rate, then the configured static rate, then the last
// cached live rate. The snapshot a conversion used travels with its result so
// a settlement can store it permanently.
type currencyService struct {
	staticRate decimal.Decimal // zero means not configured
	rateCache  portsrepo.RateCacheFacade
	cacheTTL   time.Duration
	now        func() time.Time
}

// NewCurrencyService creates a new currency service. staticRate is the
// configured GBP→INR rate (zero disables it); cacheTTL bounds how old a cached
// live rate may be before settlement refuses it.
func NewCurrencyService(staticRate decimal.Decimal, rateCache portsrepo.RateCacheFacade, cacheTTL time.Duration) portssvc.CurrencySvcFacade {
	return &currencyService{
		staticRate: staticRate,
		rateCache:  rateCache,
		cacheTTL:   cacheTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// resolve finds the effective rate snapshot. When allowStale is false a cached
// rate older than the TTL is rejected; when true it is served with Stale set.
func (s *currencyService) resolve(ctx context.Context, explicitRate *decimal.Decimal, allowStale bool) (*domain.ExchangeRateSnapshot, error) {
	now := s.now()

	if explicitRate != nil {
		if explicitRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: explicit rate must be positive", apperrors.ErrValidation)
		}
		return &domain.ExchangeRateSnapshot{Rate: *explicitRate, AsOf: now, Source: domain.RateSourceExplicit}, nil
	}

	if !s.staticRate.IsZero() {
		return &domain.ExchangeRateSnapshot{Rate: s.staticRate, AsOf: now, Source: domain.RateSourceConfigured}, nil
	}

	rate, asOf, err := s.rateCache.FetchCachedRate(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrRateUnavailable
		}
		return nil, fmt.Errorf("failed to fetch cached rate: %w", err)
	}

	stale := now.Sub(asOf) > s.cacheTTL
	if stale && !allowStale {
		return nil, fmt.Errorf("%w: cached rate from %s is stale", apperrors.ErrRateUnavailable, asOf.Format(time.RFC3339))
	}
	return &domain.ExchangeRateSnapshot{Rate: rate, AsOf: asOf, Source: domain.RateSourceCached, Stale: stale}, nil
}

// ConvertForSettlement converts with the strict resolution policy required for
// settlement records.
func (s *currencyService) ConvertForSettlement(ctx context.Context, amountGBP decimal.Decimal, explicitRate *decimal.Decimal) (decimal.Decimal, *domain.ExchangeRateSnapshot, error) {
	snapshot, err := s.resolve(ctx, explicitRate, false)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return amountGBP.Mul(snapshot.Rate).Round(2), snapshot, nil
}

// ConvertForDisplay converts for display-only contexts, degrading to a clearly
// flagged stale rate rather than failing.
func (s *currencyService) ConvertForDisplay(ctx context.Context, amountGBP decimal.Decimal) (decimal.Decimal, *domain.ExchangeRateSnapshot, error) {
	snapshot, err := s.resolve(ctx, nil, true)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if snapshot.Stale {
		middleware.GetLoggerFromCtx(ctx).Warn("Serving stale exchange rate for display",
			slog.Time("as_of", snapshot.AsOf))
	}
	return amountGBP.Mul(snapshot.Rate).Round(2), snapshot, nil
}

// CurrentRate reports the rate a conversion would use right now.
func (s *currencyService) CurrentRate(ctx context.Context) (*domain.ExchangeRateSnapshot, error) {
	return s.resolve(ctx, nil, true)
}

// StoreLiveRate persists a freshly fetched live rate into the cache.
func (s *currencyService) StoreLiveRate(ctx context.Context, rate decimal.Decimal, asOf time.Time) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if err := s.rateCache.StoreCachedRate(ctx, rate, asOf); err != nil {
		return fmt.Errorf("failed to store cached rate: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Live exchange rate cached",
		slog.String("rate", rate.String()), slog.Time("as_of", asOf))
	return nil
}
