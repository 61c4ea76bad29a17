package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(rs *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GET /reports/stats — lot-wide snapshot for the dashboard
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.reportService.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build stats", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /reports/revenue?today=true
func (h *ReportHandler) Revenue(c *gin.Context) {
	var (
		summary interface{}
		err     error
	)
	if c.Query("today") == "true" {
		summary, err = h.reportService.RevenueToday()
	} else {
		summary, err = h.reportService.Revenue()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not summarize revenue", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /reports/history — completed stays, newest first
func (h *ReportHandler) History(c *gin.Context) {
	records, err := h.reportService.History()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read history", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /reports/plates/:plate?limit=5
func (h *ReportHandler) LookupPlate(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		limit = parsed
	}

	result, err := h.reportService.LookupPlate(c.Param("plate"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up plate", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
