package auth

import (
	"net/http"
	"strings"

	"court_queue/internal/response"

	"github.com/gin-gonic/gin"
)

// HTTPSessionID используется как sid для токенов, выданных через REST, а не через WebSocket.
const HTTPSessionID = "http"

// AuthMiddleware проверяет bearer-токен администратора для REST-ручек.
func AuthMiddleware(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Authorization required",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if err := a.Verify(tokenString, HTTPSessionID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("admin", true)
		c.Next()
	}
}
