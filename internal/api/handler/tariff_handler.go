package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
	"github.com/felipe23murillo/parking/internal/service"
)

type TariffHandler struct {
	billingService *service.BillingService
}

func NewTariffHandler(bs *service.BillingService) *TariffHandler {
	return &TariffHandler{billingService: bs}
}

// GET /tariffs
func (h *TariffHandler) List(c *gin.Context) {
	tariffs, err := h.billingService.Tariffs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read tariffs", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tariffs)
}

// PUT /tariffs/:category
func (h *TariffHandler) Update(c *gin.Context) {
	var dto domain.TariffDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	dto.Category = domain.VehicleCategory(c.Param("category"))

	tariff, err := h.billingService.UpdateTariff(dto)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTariff) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tariff not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update tariff", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tariff)
}
