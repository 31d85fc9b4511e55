package controller

import (
	"errors"
	"log"
	"net/http"

	"delivery-track/internal/dto"
	"delivery-track/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(s *service.AuthService) *AuthController {
	return &AuthController{Service: s}
}

// POST /login — não requer token
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email e senha são obrigatórios."})
		return
	}

	token, user, err := ctl.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado."})
		case errors.Is(err, service.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha incorreta."})
		default:
			log.Printf("Erro ao autenticar: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		}
		return
	}

	// Mesmo token vai no corpo e no cookie de sessão (SameSite padrão)
	maxAge := int(ctl.Service.TokenTTL().Seconds())
	c.SetCookie("token", token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}
