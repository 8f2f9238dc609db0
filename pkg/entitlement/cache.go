package entitlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache is an optional Redis-backed cache for module access decisions.
// The engine itself does not cache; callers that do must key on the full
// decision input - tenant, module, tier, country, and the tenant's
// addon-state version - so a tier downgrade or a revoked grant
// invalidates by key change rather than by explicit purge.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCache creates a decision cache with the given TTL. A zero TTL
// defaults to one minute; decisions must not outlive configuration
// refresh cycles.
func NewCache(client redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// Key builds the cache key for a decision input.
func (c *Cache) Key(tenantID uuid.UUID, moduleID ModuleID, tier Tier, countryCode string, addonVersion int64) string {
	return fmt.Sprintf("entitlement:%s:%s:%s:%s:v%d", tenantID, moduleID, tier, countryCode, addonVersion)
}

// Get returns the cached result for the key, or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) (Result, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Result{}, ErrCacheMiss
	}
	if err != nil {
		return Result{}, err
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, errors.Join(ErrCacheMiss, err)
	}
	return res, nil
}

// Set stores a result under the key for the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, res Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
