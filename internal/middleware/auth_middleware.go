// auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"delivery-track/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthRequired valida o token e guarda os dados do usuário no contexto.
// Aceita o header "Authorization: Bearer <token>" ou o cookie "token"
// gravado no login.
func AuthRequired(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido"})
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("userName", user.Name)
		c.Set("userRole", string(user.Role))
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		return strings.TrimSpace(token)
	}

	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
