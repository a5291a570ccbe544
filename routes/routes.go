package routes

import (
	"marketpulse/handlers"
	"marketpulse/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", h.HandleHealthCheck)

	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", h.HandleLogin)

	// --- Product Routes ---
	products := api.Group("/products", middleware.Authenticate)
	products.Post("/", h.HandleCreateProduct)
	products.Get("/", h.HandleListProducts)
	products.Get("/:productId", h.HandleGetProduct)
	products.Put("/:productId", h.HandleUpdateProduct)
	products.Delete("/:productId", middleware.CheckRole("owner", "admin"), h.HandleDeleteProduct)

	// --- Sales Routes ---
	sales := api.Group("/sales", middleware.Authenticate)
	sales.Post("/", h.HandleCreateSale)
	sales.Get("/", h.HandleListSales)

	// --- Dashboard Routes ---
	dashboard := api.Group("/dashboard", middleware.Authenticate)
	dashboard.Get("/summary", h.HandleGetDashboardSummary)

	// --- Intelligence Routes ---
	intel := api.Group("/intelligence", middleware.Authenticate)
	intel.Get("/:productId", h.HandleGetProductIntelligence)

	// --- AI Routes ---
	ai := api.Group("/ai", middleware.Authenticate)
	ai.Post("/insight", h.HandleGenerateInsight)
}
