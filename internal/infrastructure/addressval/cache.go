package addressval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

const cacheKeyPrefix = "addrval:"

// ReviewCache stores validation results in Redis keyed by the
// normalized address fields. A nil *ReviewCache is a no-op, so callers
// never need to branch on whether caching is enabled.
type ReviewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewReviewCache creates a Redis-backed review cache
func NewReviewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ReviewCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached review for an address, or nil on a miss.
// Cache failures are logged and treated as misses.
func (c *ReviewCache) Get(ctx context.Context, addr shipping.Address) *shipping.AddressReview {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, cacheKey(addr)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("address cache read failed", zap.Error(err))
		}
		return nil
	}

	var review shipping.AddressReview
	if err := json.Unmarshal(data, &review); err != nil {
		c.logger.Warn("address cache entry corrupted", zap.Error(err))
		return nil
	}
	return &review
}

// Set stores a review. Failures are logged and ignored.
func (c *ReviewCache) Set(ctx context.Context, addr shipping.Address, review *shipping.AddressReview) {
	if c == nil || c.client == nil || review == nil {
		return
	}

	data, err := json.Marshal(review)
	if err != nil {
		c.logger.Warn("address cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(addr), data, c.ttl).Err(); err != nil {
		c.logger.Warn("address cache write failed", zap.Error(err))
	}
}

// cacheKey hashes the address fields that affect validation. Name
// fields are excluded so the same street address shares one entry.
func cacheKey(addr shipping.Address) string {
	parts := []string{
		addr.AddressLine1,
		addr.AddressLine2,
		addr.City,
		addr.State,
		addr.ZipCode,
	}
	joined := strings.ToLower(strings.Join(parts, "|"))
	sum := sha256.Sum256([]byte(joined))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
