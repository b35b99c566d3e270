package middleware

import (
	"net/http" // HTTP status codes

	"fintrack/internal/storage"

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware re-checks the caller's role against the store on
// each request, so a demoted admin loses access before the session token
// expires.
func AdminOnlyMiddleware(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := store.GetUserByID(c.Request.Context(), userID.(uint))
		if err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check if user role is admin
		if !user.IsAdmin() {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
