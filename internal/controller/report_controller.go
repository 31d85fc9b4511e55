package controller

import (
	"log"
	"net/http"
	"time"

	"delivery-track/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(s *service.ReportService) *ReportController {
	return &ReportController{Service: s}
}

// GET /reports/daily?date=YYYY-MM-DD — sem data, usa o dia de hoje
func (ctl *ReportController) Daily(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida."})
			return
		}
		day = parsed
	}

	report, err := ctl.Service.Daily(c.Request.Context(), day)
	if err != nil {
		log.Printf("Erro ao montar relatório diário: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GET /reports/summary — números históricos do painel
func (ctl *ReportController) Summary(c *gin.Context) {
	report, err := ctl.Service.Summary(c.Request.Context())
	if err != nil {
		log.Printf("Erro ao montar resumo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor."})
		return
	}

	c.JSON(http.StatusOK, report)
}
