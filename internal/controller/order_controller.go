package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"delivery-track/internal/dto"
	"delivery-track/internal/model"
	"delivery-track/internal/repository"
	"delivery-track/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *service.OrderService
}

func NewOrderController(s *service.OrderService) *OrderController {
	return &OrderController{Service: s}
}

// GET /orders — sem parâmetros lista tudo, do mais recente para o mais
// antigo. Com ?date=YYYY-MM-DD devolve {orders, total} paginado por
// ?page e ?limit (padrão 10), só com os pedidos daquele dia civil.
func (ctl *OrderController) List(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		ownerID := ""
		if c.Query("mine") == "1" {
			ownerID = c.GetString("userID")
		}

		orders, err := ctl.Service.List(c.Request.Context(), ownerID)
		if err != nil {
			log.Printf("Erro ao buscar pedidos: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar pedidos."})
			return
		}
		if orders == nil {
			orders = []model.Order{}
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida."})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	pageResult, err := ctl.Service.ListByDay(c.Request.Context(), day, page, limit)
	if err != nil {
		log.Printf("Erro ao buscar pedidos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar pedidos."})
		return
	}

	c.JSON(http.StatusOK, pageResult)
}

// POST /orders — preços e total calculados no servidor
func (ctl *OrderController) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe o cliente e ao menos um item."})
		return
	}

	order, err := ctl.Service.Create(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		ctl.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// PUT /orders/:id — substituição integral, itens reprecificados
func (ctl *OrderController) Update(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe o cliente e ao menos um item."})
		return
	}

	order, err := ctl.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		ctl.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DELETE /orders/:id
func (ctl *OrderController) Delete(c *gin.Context) {
	err := ctl.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
			return
		}
		log.Printf("Erro ao excluir pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pedido excluído com sucesso"})
}

// GET /orders/:id/receipt — recibo em texto para impressora térmica
func (ctl *OrderController) Receipt(c *gin.Context) {
	receipt, err := ctl.Service.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
			return
		}
		log.Printf("Erro ao montar recibo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.String(http.StatusOK, receipt)
}

func (ctl *OrderController) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado."})
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidPaymentStatus),
		errors.Is(err, service.ErrInvalidPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Erro ao gravar pedido: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
	}
}
