package controller

import (
	"errors"
	"log"
	"net/http"

	"delivery-track/internal/dto"
	"delivery-track/internal/model"
	"delivery-track/internal/repository"
	"delivery-track/internal/service"

	"github.com/gin-gonic/gin"
)

// Rotas de usuário só existem no grupo admin (middleware AdminOnly).
type UserController struct {
	Service *service.UserService
}

func NewUserController(s *service.UserService) *UserController {
	return &UserController{Service: s}
}

// GET /users — o hash de senha nunca é serializado (json:"-")
func (ctl *UserController) List(c *gin.Context) {
	users, err := ctl.Service.List(c.Request.Context())
	if err != nil {
		log.Printf("Erro ao buscar usuários: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar usuários."})
		return
	}
	if users == nil {
		users = []model.User{}
	}
	c.JSON(http.StatusOK, users)
}

// POST /users
func (ctl *UserController) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha nome, email e senha."})
		return
	}

	user, err := ctl.Service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado.", "field": "email"})
			return
		}
		log.Printf("Erro ao criar usuário: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// PUT /users/:id
func (ctl *UserController) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha nome e email."})
		return
	}

	user, err := ctl.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado."})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado.", "field": "email"})
		default:
			log.Printf("Erro ao atualizar usuário: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DELETE /users/:id
func (ctl *UserController) Delete(c *gin.Context) {
	err := ctl.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado."})
			return
		}
		log.Printf("Erro ao excluir usuário: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido com sucesso."})
}
