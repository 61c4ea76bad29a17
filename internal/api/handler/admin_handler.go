package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/service"
)

// AdminHandler groups the destructive and export operations. The router
// puts every route here behind the admin role.
type AdminHandler struct {
	parkingService *service.ParkingService
	exportService  *service.ExportService
}

func NewAdminHandler(ps *service.ParkingService, es *service.ExportService) *AdminHandler {
	return &AdminHandler{parkingService: ps, exportService: es}
}

// GET /admin/backup — full ledger dump as a downloadable JSON file
func (h *AdminHandler) Backup(c *gin.Context) {
	dump, err := h.exportService.Dump()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export ledger", "details": err.Error()})
		return
	}
	filename := fmt.Sprintf("parking-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, dump)
}

// GET /admin/history.csv
func (h *AdminHandler) HistoryCSV(c *gin.Context) {
	data, err := h.exportService.HistoryCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export history", "details": err.Error()})
		return
	}
	filename := fmt.Sprintf("parking-history-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// DELETE /admin/sessions — evict every parked vehicle without charging
func (h *AdminHandler) ClearActiveSessions(c *gin.Context) {
	if err := h.parkingService.ClearActiveSessions(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear sessions", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "active sessions cleared"})
}

// DELETE /admin/history
func (h *AdminHandler) ClearHistory(c *gin.Context) {
	if err := h.parkingService.ClearHistory(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear history", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}

// POST /admin/reset — reseed the whole ledger with factory defaults
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.parkingService.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset ledger", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ledger reset to defaults"})
}
