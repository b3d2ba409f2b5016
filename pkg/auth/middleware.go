package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rizperdana/share-link-gan/pkg/ctxkeys"
)

// JWTAuthMiddleware validates the session token issued by the identity
// provider and injects the authenticated identity into the Gin context.
// Browser clients typically carry the token in an httpOnly cookie.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			if cookieToken, err := c.Cookie("access_token"); err == nil && cookieToken != "" {
				auth = "Bearer " + cookieToken
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization header"})
				c.Abort()
				return
			}
		}

		// Extract Bearer token
		parts := strings.Split(auth, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := ValidateJWT(parts[1], secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(string(ctxkeys.KeyUserID), claims.UserID)
		c.Set(string(ctxkeys.KeyUsername), claims.Username)
		c.Set(string(ctxkeys.KeyEmail), claims.Email)
		c.Set(string(ctxkeys.KeyAuthType), "jwt")
		c.Set(string(ctxkeys.KeyJWTToken), parts[1])
		c.Next()
	}
}

// UserID returns the authenticated principal from the request context.
// Empty string means the middleware did not run or rejected the request.
func UserID(c *gin.Context) string {
	return c.GetString(string(ctxkeys.KeyUserID))
}
