package flight

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"flights/pkg/cache"
	"flights/pkg/logger"
)

const (
	AllOffersCacheKey = "cache:offers:all"
	DefaultCacheTTL   = 5 * time.Minute
)

type cacheEntry struct {
	Offers    []Offer   `json:"offers"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// OfferCache is a read-through cache of merged offer sets. Only non-empty results are
// stored. Concurrent misses on the same key share one computation.
type OfferCache struct {
	backend cache.Cache
	group   singleflight.Group
	logger  logger.Client
	metrics *Metrics
	now     func() time.Time
}

func NewOfferCache(store cache.Cache, log logger.Client, metrics *Metrics) *OfferCache {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &OfferCache{
		backend: store,
		logger:  log,
		metrics: metrics,
		now:     time.Now,
	}
}

// GetOrCompute returns the cached offers for key while now < expiresAt, otherwise runs
// compute and stores its offers. The bool reports a hit; a hit carries no outcomes.
//
// The shared computation is detached from the caller's cancellation so one caller
// leaving does not fail the others waiting on it. compute must bound itself.
func (c *OfferCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(context.Context) (AggregateResult, error)) (AggregateResult, bool, error) {
	if offers, ok := c.lookup(ctx, key); ok {
		c.logger.Debug("offer cache hit", logger.Field{Key: "key", Value: key})
		c.metrics.recordCache(ctx, true)
		return AggregateResult{Offers: offers}, true, nil
	}
	c.logger.Debug("offer cache miss", logger.Field{Key: "key", Value: key})
	c.metrics.recordCache(ctx, false)

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		res, err := compute(flightCtx)
		if err != nil {
			return nil, err
		}
		if len(res.Offers) > 0 {
			c.save(flightCtx, key, ttl, res.Offers)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return AggregateResult{}, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return AggregateResult{}, false, r.Err
		}
		return r.Val.(AggregateResult), false, nil
	}
}

func (c *OfferCache) lookup(ctx context.Context, key string) ([]Offer, bool) {
	raw, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.logger.Warn("offer cache read failed", logger.Field{Key: "key", Value: key}, logger.Err(err))
		}
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.Warn("offer cache entry corrupt", logger.Field{Key: "key", Value: key}, logger.Err(err))
		return nil, false
	}
	if !c.now().Before(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Offers, true
}

func (c *OfferCache) save(ctx context.Context, key string, ttl time.Duration, offers []Offer) {
	data, err := json.Marshal(cacheEntry{Offers: offers, ExpiresAt: c.now().Add(ttl)})
	if err != nil {
		c.logger.Error("offer cache encode failed", logger.Err(err))
		return
	}
	if err := c.backend.Set(ctx, key, string(data), ttl); err != nil {
		c.logger.Warn("offer cache write failed", logger.Field{Key: "key", Value: key}, logger.Err(err))
	}
}
