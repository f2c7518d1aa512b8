// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"leadfinder/internal/feature/research/domain/entity"
	"leadfinder/internal/feature/research/usecase"
)

// CachingFinder decorates a research Finder with Redis caching. Company
// research is by far the most expensive stage (one listing call plus three
// model calls per company), so repeated runs for the same product and
// preferences are served from cache.
type CachingFinder struct {
	inner     usecase.Finder
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingFinder implements usecase.Finder.
var _ usecase.Finder = (*CachingFinder)(nil)

// NewCachingFinder decorates a Finder with Redis caching.
// If ttl is 0, it defaults to 30 minutes. If namespace is empty, it uses
// "research".
func NewCachingFinder(rdb *redis.Client, ttl time.Duration, inner usecase.Finder, namespace string) *CachingFinder {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if namespace == "" {
		namespace = "research"
	}
	return &CachingFinder{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindCompanies retrieves companies, checking cache first then falling back
// to the inner Finder. Progress callbacks only fire on cache misses.
func (c *CachingFinder) FindCompanies(ctx context.Context, q usecase.Query) ([]entity.CandidateCompany, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindCompanies(ctx, q)
	}

	key := c.cacheKey(q)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.CandidateCompany
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the researcher
	out, err := c.inner.FindCompanies(ctx, q)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a research query. The market analysis is
// user-editable free text, so it contributes a digest rather than the raw
// string.
func (c *CachingFinder) cacheKey(q usecase.Query) string {
	sum := sha256.Sum256([]byte(q.MarketAnalysis))
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s:%d:%s",
		c.namespace,
		safe(q.ProductName),
		safe(q.CompanyName),
		safe(q.CompanyWebsite),
		safe(q.Location),
		safe(q.CompanyTypes),
		q.MaxCompanies,
		hex.EncodeToString(sum[:8]),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
