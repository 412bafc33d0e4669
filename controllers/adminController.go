package controllers

import (
	"timberyard-backend/database"
	"timberyard-backend/store"
	"timberyard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// WipeConfirmPhrase must be sent verbatim for the destructive reset to run.
const WipeConfirmPhrase = "WIPE"

type AdminController struct {
	store *store.Store
	gw    *database.Gateway
}

func NewAdminController(s *store.Store, gw *database.Gateway) *AdminController {
	return &AdminController{store: s, gw: gw}
}

// Wipe clears every collection in memory and in both stores. The body must
// carry {"confirm":"WIPE"}; anything else is rejected before any data moves.
func (ctl *AdminController) Wipe(c *fiber.Ctx) error {
	var body struct {
		Confirm string `json:"confirm"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if body.Confirm != WipeConfirmPhrase {
		return fiber.NewError(fiber.StatusBadRequest, "confirmation phrase missing")
	}

	if err := ctl.store.WipeAll(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "wipe failed: "+err.Error())
	}

	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("wipe", "all", "", actor, nil)
	return c.JSON(fiber.Map{"message": "all data wiped"})
}

// Sync pushes the full in-memory state through the gateway again. Used
// after an offline editing session once the remote store is back.
func (ctl *AdminController) Sync(c *fiber.Ctx) error {
	ctl.store.Flush()
	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("sync", "all", "", actor, nil)
	return c.JSON(fiber.Map{
		"message":          "sync completed",
		"remote_connected": ctl.gw.RemoteConnected(),
	})
}

// AuditLogs lists recent administrative actions, newest first.
func (ctl *AdminController) AuditLogs(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	logs, src := ctl.gw.AuditLogs(limit)
	if src == database.SourceNone {
		return fiber.NewError(fiber.StatusInternalServerError, "could not read audit logs")
	}
	return c.JSON(fiber.Map{
		"source": src.String(),
		"logs":   logs,
	})
}
