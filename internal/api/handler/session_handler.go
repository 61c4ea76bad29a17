package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
	"github.com/felipe23murillo/parking/internal/service"
)

type SessionHandler struct {
	parkingService *service.ParkingService
	reportService  *service.ReportService
}

func NewSessionHandler(ps *service.ParkingService, rs *service.ReportService) *SessionHandler {
	return &SessionHandler{parkingService: ps, reportService: rs}
}

// POST /sessions/check-in
func (h *SessionHandler) CheckIn(c *gin.Context) {
	var dto domain.CheckInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	session, err := h.parkingService.CheckIn(dto)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicatePlate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNoSpaceAvailable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register the vehicle", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// POST /sessions/check-out
func (h *SessionHandler) CheckOut(c *gin.Context) {
	var dto domain.CheckOutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	record, err := h.parkingService.CheckOut(dto.Plate)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) || errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register the exit", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

// GET /sessions?category=Car
func (h *SessionHandler) ListActive(c *gin.Context) {
	category := domain.VehicleCategory(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown vehicle category"})
		return
	}
	sessions, err := h.reportService.ActiveSessions(category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list active sessions", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GET /sessions/:plate/preview — the charge so far for a parked vehicle
func (h *SessionHandler) PreviewCharge(c *gin.Context) {
	session, charge, err := h.parkingService.PreviewCharge(c.Param("plate"))
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute the charge", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "charge": charge})
}
