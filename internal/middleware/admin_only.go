// admin_only.go
package middleware

import (
	"net/http"

	"delivery-track/internal/model"

	"github.com/gin-gonic/gin"
)

// AdminOnly barra quem não tem papel de administrador. Deve rodar depois
// de AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role != string(model.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Acesso restrito ao administrador"})
			c.Abort()
			return
		}
		c.Next()
	}
}
