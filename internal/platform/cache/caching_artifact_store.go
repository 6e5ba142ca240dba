// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"outreach_backend/internal/feature/outreach/usecase"
)

// DefaultTTL is how long an artifact stays in Redis after it was last read or written.
const DefaultTTL = 24 * time.Hour

// CachingArtifactStore decorates an ArtifactStore with Redis caching.
// The inner store stays the source of truth; Redis errors never fail a call.
type CachingArtifactStore struct {
	inner     usecase.ArtifactStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ArtifactStore = (*CachingArtifactStore)(nil)

// NewCachingArtifactStore decorates an ArtifactStore with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "artifacts".
func NewCachingArtifactStore(rdb *redis.Client, ttl time.Duration, inner usecase.ArtifactStore, namespace string) *CachingArtifactStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "artifacts"
	}
	return &CachingArtifactStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Load returns an artifact, checking Redis first then falling back to the inner store.
func (c *CachingArtifactStore) Load(ctx context.Context, kind, company string) ([]byte, error) {
	if c.rdb == nil {
		return c.inner.Load(ctx, kind, company)
	}

	key := c.cacheKey(kind, company)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		if json.Valid(b) {
			return b, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the inner store. Misses are not cached.
	b, err := c.inner.Load(ctx, kind, company)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	return b, nil
}

// Save writes through to the inner store, then refreshes the cache entry.
func (c *CachingArtifactStore) Save(ctx context.Context, kind, company string, data []byte) error {
	if err := c.inner.Save(ctx, kind, company, data); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.rdb.Set(ctx, c.cacheKey(kind, company), data, c.ttl).Err()
	return nil
}

// Purge removes every artifact of a company from the inner store and the cache.
func (c *CachingArtifactStore) Purge(ctx context.Context, company string) error {
	if err := c.inner.Purge(ctx, company); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.deleteByPattern(ctx, escapeGlob(c.cacheKeyPrefix(company))+"*") // Best effort
	return nil
}

// cacheKey generates a cache key for one artifact.
func (c *CachingArtifactStore) cacheKey(kind, company string) string {
	return c.cacheKeyPrefix(company) + usecase.ArtifactKey(kind)
}

// cacheKeyPrefix generates the prefix shared by all artifacts of a company.
// The company part is normalized the same way as the file store's names.
func (c *CachingArtifactStore) cacheKeyPrefix(company string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, usecase.ArtifactKey(company))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingArtifactStore) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// globReplacer escapes the metacharacters of a SCAN MATCH pattern.
var globReplacer = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// escapeGlob makes s match itself literally in a SCAN MATCH pattern.
func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
