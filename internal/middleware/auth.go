package middleware

import (
	"net/http"
	"strings"

	"github.com/awais7012/lms-2/internal/services"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "user_id"

// RequireAuth validates the bearer access token and stores the subject
// in the request context.
func RequireAuth(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			c.Abort()
			return
		}

		subject, err := tokenService.VerifyAccessToken(
			strings.TrimPrefix(authHeader, "Bearer "),
		)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserID, subject)
		c.Next()
	}
}
