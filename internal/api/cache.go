package api

import (
	"context"
	"time"

	"fintrack/internal/utils"

	"github.com/redis/go-redis/v9"
)

// Cache keys for the read endpoints. Reports and listings are cached for
// a minute and dropped together after any mutation, since every mutation
// can move totals, rankings and listings at once.
const (
	cacheTTL = 60 * time.Second

	statsCacheKey        = "report:stats"
	reportsCacheKey      = "report:financial"
	recentCachePrefix    = "report:recent:"
	usersCacheKey        = "list:users"
	transactionsCacheKey = "list:transactions"
)

// invalidateCaches drops every cached report and listing. Invalidation is
// best effort: a failed delete only means a stale read for up to the TTL.
func invalidateCaches(ctx context.Context, rdb *redis.Client) {
	_ = utils.DeleteCacheByPrefix(ctx, rdb, "report:") // Stats, financial, recent
	_ = utils.DeleteCache(ctx, rdb, usersCacheKey)
	_ = utils.DeleteCache(ctx, rdb, transactionsCacheKey)
}
