package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"soccer-coach/internal/auth"
)

const usernameKey = "username"

// AuthRequired rejects requests without a valid bearer token and stores
// the token's username in the request context. Token validity does not
// imply the user still exists; handlers resolve the user themselves.
func AuthRequired(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		username, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

func currentUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
