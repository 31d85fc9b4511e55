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

type ClientController struct {
	Service *service.ClientService
}

func NewClientController(s *service.ClientService) *ClientController {
	return &ClientController{Service: s}
}

// GET /clients — ?mine=1 restringe aos clientes do usuário autenticado
func (ctl *ClientController) List(c *gin.Context) {
	ownerID := ""
	if c.Query("mine") == "1" {
		ownerID = c.GetString("userID")
	}

	clients, err := ctl.Service.List(c.Request.Context(), ownerID)
	if err != nil {
		log.Printf("Erro ao buscar clientes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar clientes."})
		return
	}
	if clients == nil {
		clients = []model.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// POST /clients
func (ctl *ClientController) Create(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha nome e telefone."})
		return
	}

	client, err := ctl.Service.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		if errors.Is(err, service.ErrPhoneTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Telefone já cadastrado.", "field": "phone"})
			return
		}
		log.Printf("Erro ao criar cliente: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusCreated, client)
}

// PUT /clients/:id — substituição integral do documento
func (ctl *ClientController) Update(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha nome e telefone."})
		return
	}

	client, err := ctl.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado."})
		case errors.Is(err, service.ErrPhoneTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Telefone já cadastrado.", "field": "phone"})
		default:
			log.Printf("Erro ao atualizar cliente: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// DELETE /clients/:id
func (ctl *ClientController) Delete(c *gin.Context) {
	err := ctl.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado."})
			return
		}
		log.Printf("Erro ao excluir cliente: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cliente removido com sucesso."})
}
