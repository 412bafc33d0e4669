package controllers

import (
	"timberyard-backend/database"
	"timberyard-backend/store"

	"github.com/gofiber/fiber/v2"
)

type ReportsController struct {
	store *store.Store
	gw    *database.Gateway
}

func NewReportsController(s *store.Store, gw *database.Gateway) *ReportsController {
	return &ReportsController{store: s, gw: gw}
}

// Invoices returns the per-client invoice view reconstructed from the sale
// ledger: clients sorted by lifetime spend, invoices newest first.
func (ctl *ReportsController) Invoices(c *fiber.Ctx) error {
	return c.JSON(ctl.store.Statements())
}

// Summary is the financial overview: stock valuation, totals, payroll.
func (ctl *ReportsController) Summary(c *fiber.Ctx) error {
	return c.JSON(ctl.store.Summarize())
}

// Status reports connectivity and, per entity, where the last load was
// served from. The UI shows this as the sync indicator.
func (ctl *ReportsController) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"remote_connected": ctl.gw.RemoteConnected(),
		"sources":          ctl.store.Sources(),
	})
}
