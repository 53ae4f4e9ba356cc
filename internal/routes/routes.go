// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"arcbank/internal/config"
	"arcbank/internal/handlers"
	"arcbank/internal/middleware"
	"arcbank/internal/models"
	"arcbank/internal/repositories"
	"arcbank/internal/services/auth"
	"arcbank/internal/services/hub"
	"arcbank/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
// The notification hub is constructed by the caller and injected so it
// shares a lifecycle with the server, not with this package.
func SetupRoutes(app *fiber.App, db *gorm.DB, notificationHub *hub.Hub) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	transferRepo := repositories.NewTransferRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	transferService := transfer.NewService(transferRepo, userRepo, notificationHub, transfer.Config{
		MaxTransferAmount: config.GetDecimalEnv("TRANSFER_MAX_AMOUNT", transfer.DefaultMaxTransferAmount),
		HighRiskThreshold: config.GetDecimalEnv("TRANSFER_HIGH_RISK_THRESHOLD", transfer.DefaultHighRiskThreshold),
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	transferHandler := handlers.NewTransferHandler(transferService)
	adminHandler := handlers.NewAdminHandler(transferService)
	wsHandler := handlers.NewWSHandler(notificationHub, authService, transferService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)
	api.Get("/health", handlers.HealthCheck)

	// Live channel: credential checked in Upgrade before registration
	api.Get("/ws", wsHandler.Upgrade, websocket.New(wsHandler.Serve))

	// Authenticated user endpoints
	transfers := api.Group("/transfers", authMiddleware.Handler)
	transfers.Post("/",
		middleware.HasPermission(models.PermissionTransferWrite),
		transferHandler.Submit)
	transfers.Get("/",
		middleware.HasPermission(models.PermissionTransferRead),
		transferHandler.List)
	transfers.Get("/updates",
		middleware.HasPermission(models.PermissionTransferRead),
		transferHandler.Updates)

	// Admin endpoints
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)
	admin.Get("/transfers/pending", adminHandler.PendingTransfers)
	admin.Post("/transfers/:id/review", adminHandler.ReviewTransfer)
}
