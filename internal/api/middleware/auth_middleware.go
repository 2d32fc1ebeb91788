package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/luewire/DailyFlow-HabitTracker/pkg/logger"
	"github.com/luewire/DailyFlow-HabitTracker/pkg/security/auth"
)

var log = logger.NewLogger()

const bearerSchema = "Bearer "

// NewAuthMiddleware validates the bearer token and stores the caller's id in
// the request context.
func NewAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := authHeader[len(bearerSchema):]
		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			log.Error("Token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if claims.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token carries no subject"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("token", tokenString)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
