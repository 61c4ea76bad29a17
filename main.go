package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felipe23murillo/parking/internal/api"
	"github.com/felipe23murillo/parking/internal/api/handler"
	"github.com/felipe23murillo/parking/internal/api/middleware"
	"github.com/felipe23murillo/parking/internal/config"
	"github.com/felipe23murillo/parking/internal/repository/boltstore"
	"github.com/felipe23murillo/parking/internal/service"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Open the ledger (seeds defaults on first run)
	store, err := boltstore.New(cfg.DataPath, cfg.SpaceCounts)
	if err != nil {
		log.Fatalf("Could not open ledger: %v", err)
	}
	defer store.Close()
	log.Printf("Ledger open at %s", cfg.DataPath)

	// 3. Initialize repositories
	userRepo := boltstore.NewUserRepo(store)
	spaceRepo := boltstore.NewSpaceRepo(store)
	sessionRepo := boltstore.NewSessionRepo(store)
	historyRepo := boltstore.NewHistoryRepo(store)
	tariffRepo := boltstore.NewTariffRepo(store)
	settingsRepo := boltstore.NewSettingsRepo(store)

	// 4. WebSocket occupancy feed
	wsManager := handler.NewWebSocketManager()
	go wsManager.Start()
	log.Println("WebSocket manager started.")

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	billingService := service.NewBillingService(tariffRepo)
	parkingService := service.NewParkingService(spaceRepo, sessionRepo, historyRepo,
		billingService, store, wsManager, cfg.Location)
	reportService := service.NewReportService(spaceRepo, sessionRepo, historyRepo,
		tariffRepo, billingService, cfg.Location)
	assistantService := service.NewAssistantService(reportService, settingsRepo, cfg.Location)
	exportService := service.NewExportService(spaceRepo, sessionRepo, historyRepo,
		tariffRepo, settingsRepo, cfg.Location)
	settingsService := service.NewSettingsService(settingsRepo)

	// 6. Auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// 7. HTTP router
	router := api.SetupRouter(api.Services{
		Auth:      authService,
		Parking:   parkingService,
		Billing:   billingService,
		Reports:   reportService,
		Assistant: assistantService,
		Export:    exportService,
		Settings:  settingsService,
	}, authMiddleware, wsManager)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe() error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shut down: %v", err)
	}

	log.Println("Server stopped.")
}
