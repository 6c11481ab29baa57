package middlewares

import (
	"FocusLock/services"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenParser проверяет токен устройства, его реализует *services.AuthService
type TokenParser interface {
	ParseToken(tokenString string) (*services.Claims, error)
}

func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if c.Request.URL.Path == "/ws" {
			// Браузерный WebSocket не умеет ставить заголовки
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, err := parser.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if claims.DeviceID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: missing device_id"})
			c.Abort()
			return
		}

		c.Set("device_id", claims.DeviceID)
		if claims.OwnerID != "" {
			c.Set("owner_id", claims.OwnerID)
		}
		c.Next()
	}
}
