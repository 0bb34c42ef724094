// Package cache holds adapters backed by Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
)

const (
	rateKey     = "fx:gbp_inr:rate"
	rateAsOfKey = "fx:gbp_inr:as_of"
)

// RedisRateCache stores the most recently fetched live GBP→INR rate in Redis.
// Entries never expire on the Redis side; staleness is judged by the currency
// service against the stored as-of timestamp, so an old rate stays available
// for display even when it is too old to settle with.
type RedisRateCache struct {
	client *redis.Client
}

// NewRedisRateCache creates a rate cache backed by the given Redis client.
func NewRedisRateCache(client *redis.Client) portsrepo.RateCacheFacade {
	return &RedisRateCache{client: client}
}

var _ portsrepo.RateCacheFacade = (*RedisRateCache)(nil)

// FetchCachedRate returns the cached rate and when it was fetched.
func (c *RedisRateCache) FetchCachedRate(ctx context.Context) (decimal.Decimal, time.Time, error) {
	values, err := c.client.MGet(ctx, rateKey, rateAsOfKey).Result()
	if err != nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("failed to fetch cached rate: %w", err)
	}
	rateStr, okRate := values[0].(string)
	asOfStr, okAsOf := values[1].(string)
	if !okRate || !okAsOf {
		return decimal.Decimal{}, time.Time{}, apperrors.ErrNotFound
	}
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("corrupt cached rate %q: %w", rateStr, err)
	}
	asOf, err := time.Parse(time.RFC3339Nano, asOfStr)
	if err != nil {
		return decimal.Decimal{}, time.Time{}, fmt.Errorf("corrupt cached rate timestamp %q: %w", asOfStr, err)
	}
	return rate, asOf.UTC(), nil
}

// StoreCachedRate records a freshly fetched live rate.
func (c *RedisRateCache) StoreCachedRate(ctx context.Context, rate decimal.Decimal, asOf time.Time) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, rateKey, rate.String(), 0)
	pipe.Set(ctx, rateAsOfKey, asOf.UTC().Format(time.RFC3339Nano), 0)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to store cached rate: %w", err)
	}
	return nil
}
