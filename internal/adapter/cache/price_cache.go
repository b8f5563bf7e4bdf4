// Package cache decorates the price repository with a Redis read-through
// cache. Range queries over the price feed are the most expensive reads
// the dashboard issues and their rows never change retroactively, so
// short-TTL caching is safe.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/domain"
)

// priceCache implements domain.PriceRepository around an inner
// repository. Cache failures degrade to the inner repository, never to
// an error.
type priceCache struct {
	inner  domain.PriceRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPriceCache creates a price repository that serves reads from Redis
// when possible
func NewPriceCache(inner domain.PriceRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) domain.PriceRepository {
	return &priceCache{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With(zap.String("caller", "cache.PriceCache")),
	}
}

// List serves the query from the cache, falling back to the inner
// repository and populating the cache on a miss
func (c *priceCache) List(ctx context.Context, query domain.PriceQuery) ([]domain.Price, error) {
	key := cacheKey(query)

	cached, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var rows []domain.Price
		if err := json.Unmarshal([]byte(cached), &rows); err == nil {
			return rows, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("price cache read failed", zap.Error(err))
	}

	rows, err := c.inner.List(ctx, query)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(rows); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.Warn("price cache write failed", zap.Error(err))
		}
	}

	return rows, nil
}

// Add delegates to the inner repository. Cached entries age out via TTL
// rather than explicit invalidation.
func (c *priceCache) Add(ctx context.Context, price *domain.Price) error {
	return c.inner.Add(ctx, price)
}

// cacheKey derives a stable key from the query's date selection and
// asset filter. Single-day queries with no explicit date resolve to
// today so that consecutive days do not share an entry.
func cacheKey(query domain.PriceQuery) string {
	from, to := query.From, query.To
	if from == "" || to == "" {
		asOf := query.AsOf
		if asOf == "" {
			asOf = time.Now().Format(domain.DateFormat)
		}
		from, to = asOf, asOf
	}
	return "prices:" + from + ":" + to + ":" + strings.Join(query.Assets, ",")
}
