package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Users      *handlers.UsersHandler
	Products   *handlers.ProductsHandler
	Categories *handlers.CategoriesHandler
	Orders     *handlers.OrdersHandler
	Gate       *auth.Gate
	UploadsDir string
}

// RegisterRoutes wires HTTP routes. The gate guards everything registered
// after it; which requests actually need a credential is decided by the
// gate's exemption list, and admin-only routes add the privilege guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Gate.Handle)

	if cfg.UploadsDir != "" {
		app.Static("/public/uploads", cfg.UploadsDir)
	}

	admin := cfg.Gate.RequireAdmin()
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/refresh", cfg.Users.Refresh)
	users.Post("/logout", cfg.Users.Logout)
	users.Get("/get/count", admin, cfg.Users.Count)
	users.Get("/", admin, cfg.Users.List)
	users.Get("/:id", admin, cfg.Users.Get)
	users.Delete("/:id", admin, cfg.Users.Delete)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/get/count", cfg.Products.Count)
	products.Get("/get/featured/:count", cfg.Products.Featured)
	products.Get("/by-category/:id", cfg.Products.ByCategory)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", admin, cfg.Products.Create)
	products.Put("/:id", admin, cfg.Products.Update)
	products.Delete("/:id", admin, cfg.Products.Delete)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", admin, cfg.Categories.Create)
	categories.Put("/:id", admin, cfg.Categories.Update)
	categories.Delete("/:id", admin, cfg.Categories.Delete)

	orders := api.Group("/orders")
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/get/totalsales", admin, cfg.Orders.TotalSales)
	orders.Get("/get/count", admin, cfg.Orders.Count)
	orders.Get("/get/userorders/:id", admin, cfg.Orders.UserOrders)
	orders.Get("/", admin, cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Put("/:id", admin, cfg.Orders.UpdateStatus)
	orders.Delete("/:id", admin, cfg.Orders.Delete)
}
