package api

import (
	"github.com/gin-gonic/gin"

	"github.com/felipe23murillo/parking/internal/api/handler"
	"github.com/felipe23murillo/parking/internal/api/middleware"
	"github.com/felipe23murillo/parking/internal/service"
)

type Services struct {
	Auth      *service.AuthService
	Parking   *service.ParkingService
	Billing   *service.BillingService
	Reports   *service.ReportService
	Assistant *service.AssistantService
	Export    *service.ExportService
	Settings  *service.SettingsService
}

func SetupRouter(svc Services, authMw *middleware.AuthMiddleware, wsManager *handler.WebSocketManager) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// WebSocket endpoint for the live occupancy feed (no auth)
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(svc.Auth)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		sessionH := handler.NewSessionHandler(svc.Parking, svc.Reports)
		sessionRoutes := v1.Group("/sessions")
		{
			sessionRoutes.POST("/check-in", sessionH.CheckIn)
			sessionRoutes.POST("/check-out", sessionH.CheckOut)
			sessionRoutes.GET("", sessionH.ListActive)
			sessionRoutes.GET("/:plate/preview", sessionH.PreviewCharge)
		}

		spaceH := handler.NewSpaceHandler(svc.Parking, svc.Reports)
		spaceRoutes := v1.Group("/spaces")
		{
			spaceRoutes.GET("", spaceH.Occupancy)
			spaceRoutes.GET("/:category/available", spaceH.ListAvailable)
		}

		tariffH := handler.NewTariffHandler(svc.Billing)
		tariffRoutes := v1.Group("/tariffs")
		{
			tariffRoutes.GET("", tariffH.List)
			tariffRoutes.PUT("/:category", authMw.AuthorizeRole("admin"), tariffH.Update)
		}

		reportH := handler.NewReportHandler(svc.Reports)
		reportRoutes := v1.Group("/reports")
		{
			reportRoutes.GET("/stats", reportH.Stats)
			reportRoutes.GET("/revenue", reportH.Revenue)
			reportRoutes.GET("/history", reportH.History)
			reportRoutes.GET("/plates/:plate", reportH.LookupPlate)
		}

		assistantH := handler.NewAssistantHandler(svc.Assistant)
		assistantRoutes := v1.Group("/assistant")
		{
			assistantRoutes.GET("/welcome", assistantH.Welcome)
			assistantRoutes.POST("/ask", assistantH.Ask)
		}

		settingsH := handler.NewSettingsHandler(svc.Settings)
		settingsRoutes := v1.Group("/settings")
		{
			settingsRoutes.GET("", settingsH.Get)
			settingsRoutes.PUT("", authMw.AuthorizeRole("admin"), settingsH.Update)
		}

		adminH := handler.NewAdminHandler(svc.Parking, svc.Export)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(authMw.AuthorizeRole("admin"))
		{
			adminRoutes.GET("/backup", adminH.Backup)
			adminRoutes.GET("/history.csv", adminH.HistoryCSV)
			adminRoutes.DELETE("/sessions", adminH.ClearActiveSessions)
			adminRoutes.DELETE("/history", adminH.ClearHistory)
			adminRoutes.POST("/reset", adminH.Reset)
		}
	}
	return r
}
