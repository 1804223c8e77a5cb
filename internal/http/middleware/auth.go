// README: Auth middleware — verifies the access-token cookie and stashes the caller.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmaster/internal/auth"
	"tripmaster/internal/types"
)

const (
	// AccessCookie is the cookie carrying the signed access token.
	AccessCookie = "accessToken"

	ctxUserID    = "auth.userID"
	ctxUserEmail = "auth.userEmail"
)

// Auth rejects requests without a valid access token and records the caller
// identity on the gin context.
func Auth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AccessCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Next()
	}
}

// CallerUID returns the authenticated user id, or "" when unauthenticated.
func CallerUID(c *gin.Context) types.ID {
	return types.ID(c.GetString(ctxUserID))
}

// CallerEmail returns the authenticated user's email, or "".
func CallerEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}
