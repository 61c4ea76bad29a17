package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/service"
)

type AssistantHandler struct {
	assistantService *service.AssistantService
}

func NewAssistantHandler(as *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: as}
}

type askRequest struct {
	Message string `json:"message" binding:"required"`
}

// GET /assistant/welcome
func (h *AssistantHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reply": h.assistantService.Welcome()})
}

// POST /assistant/ask
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	reply, err := h.assistantService.Ask(req.Message)
	if err != nil {
		if errors.Is(err, service.ErrAssistantBusy) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "assistant is busy, try again in a moment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not answer", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
