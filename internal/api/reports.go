package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"fintrack/internal/service"
	"fintrack/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// SystemStatsHandler returns the dashboard overview totals and the
// six-month net chart
func SystemStatsHandler(svc *service.ReportService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached service.SystemStats
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, statsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"stats": cached, "cached": true})
			return
		}
		stats, err := svc.SystemStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the stats for future requests
		_ = utils.SetCache(ctx, rdb, statsCacheKey, stats, cacheTTL)
		c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": false})
	}
}

// FinancialReportsHandler returns the reports page view model with the
// credit/debit split and the balance ranking
func FinancialReportsHandler(svc *service.ReportService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached service.FinancialReports
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, reportsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"reports": cached, "cached": true})
			return
		}
		reports, err := svc.FinancialReports(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the reports for future requests
		_ = utils.SetCache(ctx, rdb, reportsCacheKey, reports, cacheTTL)
		c.JSON(http.StatusOK, gin.H{"reports": reports, "cached": false})
	}
}
