package routes

import (
	"github.com/gofiber/fiber/v2"

	"timberyard-backend/controllers"
	"timberyard-backend/database"
	"timberyard-backend/middlewares"
	"timberyard-backend/store"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, s *store.Store, gw *database.Gateway) {
	auth := controllers.NewAuthController(gw)
	inventory := controllers.NewInventoryController(s, gw)
	sales := controllers.NewSalesController(s, gw)
	purchases := controllers.NewPurchaseController(s, gw)
	clients := controllers.NewClientController(s, gw)
	employees := controllers.NewEmployeeController(s, gw)
	reports := controllers.NewReportsController(s, gw)
	admin := controllers.NewAdminController(s, gw)

	api := app.Group("/api")

	// Public auth endpoint
	api.Post("/login", auth.Login)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard on mutating requests; keyed storage lives in the
	// local cache so replays still short-circuit while offline.
	protected.Use(middlewares.Idempotency(gw.CacheDB()))

	// Inventory
	protected.Get("/inventory", inventory.List)
	protected.Post("/inventory", inventory.Create) // single or batch, upsert by code
	protected.Put("/inventory/:id", inventory.Update)

	// Sales (one POST books one invoice worth of lines)
	protected.Get("/sales", sales.List)
	protected.Post("/sales", sales.Submit)

	// Purchases
	protected.Get("/purchases", purchases.List)
	protected.Post("/purchases", purchases.Create)

	// Clients
	protected.Get("/clients", clients.List)
	protected.Post("/clients", clients.Save) // upsert by name
	protected.Put("/clients/:id", clients.Update)

	// Derived invoice view + connectivity
	protected.Get("/invoices", reports.Invoices)
	protected.Get("/status", reports.Status)

	// Admin-only: deletes, employees, reports, resets
	adminOnly := protected.Group("")
	adminOnly.Use(middlewares.RequireAdmin())

	adminOnly.Delete("/inventory/:id", inventory.Delete)
	adminOnly.Delete("/sales/:id", sales.Delete)
	adminOnly.Delete("/purchases/:id", purchases.Delete)
	adminOnly.Delete("/clients/:id", clients.Delete)

	adminOnly.Get("/employees", employees.List)
	adminOnly.Post("/employees", employees.Save) // upsert by name
	adminOnly.Post("/employees/:id/advances", employees.AddAdvance)
	adminOnly.Delete("/employees/:id", employees.Delete)

	adminOnly.Get("/reports/summary", reports.Summary)

	adminOnly.Post("/admin/wipe", admin.Wipe)
	adminOnly.Post("/admin/sync", admin.Sync)
	adminOnly.Get("/admin/audit-logs", admin.AuditLogs)
}
