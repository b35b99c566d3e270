package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/utils"

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Request struct for admin user creation
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`        // Display name must be provided
	Email string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Role  string `json:"role"`                           // Role: admin or member, defaults to member
}

// Request struct for admin user update
type UpdateUserRequest struct {
	Name    string `json:"name" binding:"required"`        // Display name must be provided
	Email   string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Role    string `json:"role"`                           // Role: admin or member
	Balance int64  `json:"balance"`                        // Balance override in whole monetary units
}

// ListUsersHandler returns all users
func ListUsersHandler(svc *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		var cached []domain.User
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, usersCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"users": cached, "cached": true})
			return
		}
		users, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, usersCacheKey, users, cacheTTL)
		c.JSON(http.StatusOK, gin.H{"users": users, "cached": false})
	}
}

// CreateUserHandler adds a user with the default password
func CreateUserHandler(svc *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := svc.Create(c.Request.Context(), req.Name, req.Email, req.Role)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateCaches(context.Background(), rdb) // User totals and listings changed
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// UpdateUserHandler edits a user's profile, role and balance
func UpdateUserHandler(svc *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := svc.Update(c.Request.Context(), id, req.Name, req.Email, req.Role, req.Balance)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateCaches(context.Background(), rdb) // Balances and listings changed
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DeleteUserHandler removes a user without ledger history
func DeleteUserHandler(svc *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		invalidateCaches(context.Background(), rdb) // User totals and listings changed
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

// pathID parses the :id path parameter, rejecting the request on failure
func pathID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(v), true
}
