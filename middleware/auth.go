package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tahseel-app/tahseel-backend/config"
	"github.com/tahseel-app/tahseel-backend/internal/auth"
	"github.com/tahseel-app/tahseel-backend/logger"
)

// AuthMiddleware validates the Bearer token and stores the authenticated user
// ID in the request context. Requests without a valid token never reach the
// handlers.
func AuthMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization required",
			})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := auth.ValidateAccessToken(token, cfg.JwtSecretKey)
		if err != nil {
			log.Warnw("Invalid access token",
				"error", err,
				"token", logger.MaskToken(token),
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
