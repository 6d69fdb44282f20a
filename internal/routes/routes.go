package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/clickkart/internal/config"
	"github.com/example/clickkart/internal/handlers"
	"github.com/example/clickkart/internal/middleware"
	"github.com/example/clickkart/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	addressService := services.NewAddressService(services.NewAddressRepo(db))

	authHandler := handlers.NewAuthHandler(db, cfg)
	addressHandler := handlers.NewAddressHandler(addressService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	addresses := protected.Group("/addresses")
	addresses.Get("/", addressHandler.ListAddresses)
	addresses.Post("/", addressHandler.CreateAddress)
	addresses.Put("/:id", addressHandler.UpdateAddress)
	addresses.Delete("/:id", addressHandler.DeleteAddress)
	addresses.Patch("/:id/default", addressHandler.SetDefaultAddress)
}
