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

type ProductController struct {
	Service *service.ProductService
}

func NewProductController(s *service.ProductService) *ProductController {
	return &ProductController{Service: s}
}

// GET /products — ?mine=1 restringe aos produtos do usuário autenticado
func (ctl *ProductController) List(c *gin.Context) {
	ownerID := ""
	if c.Query("mine") == "1" {
		ownerID = c.GetString("userID")
	}

	products, err := ctl.Service.List(c.Request.Context(), ownerID)
	if err != nil {
		log.Printf("Erro ao buscar produtos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar produtos."})
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// POST /products
func (ctl *ProductController) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos obrigatórios."})
		return
	}

	product, err := ctl.Service.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		log.Printf("Erro ao criar produto: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// PUT /products/:id
func (ctl *ProductController) Update(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha todos os campos obrigatórios."})
		return
	}

	product, err := ctl.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado."})
			return
		}
		log.Printf("Erro ao atualizar produto: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /products/:id
func (ctl *ProductController) Delete(c *gin.Context) {
	err := ctl.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado."})
			return
		}
		log.Printf("Erro ao excluir produto: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produto deletado com sucesso."})
}
