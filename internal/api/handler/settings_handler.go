package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(ss *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

// GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read settings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var dto domain.SettingsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	settings, err := h.settingsService.Update(dto)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update settings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}
