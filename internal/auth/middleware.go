package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	claimsContextKey = "gateway_claims"
)

// Required extracts and validates the bearer token from the Authorization
// header. On success the gateway claims are stored on the gin context for
// handlers to read through GetClaims.
func Required(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := tokens.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// GetClaims returns the gateway claims set by Required, or nil when the
// request was not authenticated.
func GetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserID returns the acting chat user id, or "" when unauthenticated.
func GetUserID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// GetTeamID returns the workspace the actor belongs to.
func GetTeamID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.TeamID
	}
	return ""
}

// GetTimezone returns the actor's IANA timezone name. May be empty, in
// which case callers fall back to UTC.
func GetTimezone(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.Timezone
	}
	return ""
}
