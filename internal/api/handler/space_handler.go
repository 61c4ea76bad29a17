package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/service"
)

type SpaceHandler struct {
	parkingService *service.ParkingService
	reportService  *service.ReportService
}

func NewSpaceHandler(ps *service.ParkingService, rs *service.ReportService) *SpaceHandler {
	return &SpaceHandler{parkingService: ps, reportService: rs}
}

// GET /spaces — per-category occupancy overview
func (h *SpaceHandler) Occupancy(c *gin.Context) {
	report, err := h.reportService.Occupancy()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read occupancy", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /spaces/:category/available
func (h *SpaceHandler) ListAvailable(c *gin.Context) {
	category := domain.VehicleCategory(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown vehicle category"})
		return
	}
	spaces, err := h.parkingService.ListAvailable(category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list spaces", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, spaces)
}
