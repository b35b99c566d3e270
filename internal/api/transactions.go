package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"fintrack/internal/service"
	"fintrack/internal/storage"
	"fintrack/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Request struct for recording a transaction
type CreateTransactionRequest struct {
	UserID uint   `json:"user_id" binding:"required"` // Subject of the money movement
	Amount int64  `json:"amount" binding:"required"`  // Signed amount, nonzero
	Reason string `json:"reason" binding:"required"`  // Free-text reason
}

// CreateTransactionHandler records a ledger entry with the authenticated
// admin as performer
func CreateTransactionHandler(svc *service.LedgerService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		performerID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateTransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		t, err := svc.Apply(c.Request.Context(), req.UserID, req.Amount, req.Reason, performerID.(uint))
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateCaches(context.Background(), rdb) // Totals, listings and balances changed
		c.JSON(http.StatusCreated, gin.H{"transaction": t})
	}
}

// ListTransactionsHandler returns the full ledger, newest first
func ListTransactionsHandler(svc *service.ReportService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []storage.TransactionRow
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, transactionsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"transactions": cached, "cached": true})
			return
		}
		rows, err := svc.AllTransactions(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, transactionsCacheKey, rows, cacheTTL)
		c.JSON(http.StatusOK, gin.H{"transactions": rows, "cached": false})
	}
}

// RecentTransactionsHandler returns the newest entries for the dashboard
// widget, capped at 5
func RecentTransactionsHandler(svc *service.ReportService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0 // Service applies the default and the cap
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				limit = v // Set limit if valid
			}
		}
		ctx := context.Background() // Use background context for Redis
		cacheKey := recentCachePrefix + strconv.Itoa(limit)
		var cached []storage.TransactionRow
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"transactions": cached, "cached": true})
			return
		}
		rows, err := svc.RecentTransactions(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the widget data for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, rows, cacheTTL)
		c.JSON(http.StatusOK, gin.H{"transactions": rows, "cached": false})
	}
}
