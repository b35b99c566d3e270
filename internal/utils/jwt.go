package utils

import (
	"time" // Time for token expiration

	"fintrack/internal/domain"

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// SessionTTL matches the 24 hour session lifetime of the admin app.
const SessionTTL = 24 * time.Hour

// Claims carry the session principal alongside the standard JWT claims.
type Claims struct {
	UserID               uint   `json:"user_id"` // Custom claim for user ID
	Name                 string `json:"name"`    // Display name
	Email                string `json:"email"`   // Login email
	Role                 string `json:"role"`    // Role: admin or member
	jwt.RegisteredClaims        // Standard JWT claims
}

// Identity rebuilds the session principal from the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{
		ID:    c.UserID,
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}
}

// GenerateJWT creates a session token for an authenticated identity.
func GenerateJWT(identity *domain.Identity, secret string) (string, error) {
	// Set token claims
	claims := Claims{
		UserID: identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
		Role:   identity.Role,
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)), // Session expires after 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),                 // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a session token string.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
