package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	researchusecase "leadfinder/internal/feature/research/usecase"
	"leadfinder/internal/platform/cache"
	infrahttp "leadfinder/internal/platform/http"
	"leadfinder/internal/platform/scrape"
	"leadfinder/internal/shared/ratelimiter"
)

// researchCacheTTL は候補企業調査結果のキャッシュ保持期間です。
const researchCacheTTL = 30 * time.Minute

// NewScraper creates a rate-limited web scraper with HTTP client.
func NewScraper() *scrape.Scraper {
	cfg := scrape.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(10, time.Minute)
	return scrape.NewScraper(cfg, httpClient, limiter)
}

// NewFinder creates the research usecase wrapped with a Redis cache.
// If rdb is nil the cache layer passes every call straight through.
func NewFinder(g researchusecase.TextGenerator, lookup researchusecase.CompanyLookup, rdb *redis.Client) researchusecase.Finder {
	inner := researchusecase.NewResearchUsecase(g, lookup)
	return cache.NewCachingFinder(rdb, researchCacheTTL, inner, "research")
}
