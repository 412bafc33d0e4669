package controllers

import (
	"timberyard-backend/database"
	"timberyard-backend/middlewares"
	"timberyard-backend/models"
	"timberyard-backend/store"
	"timberyard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ClientController struct {
	store *store.Store
	gw    *database.Gateway
}

func NewClientController(s *store.Store, gw *database.Gateway) *ClientController {
	return &ClientController{store: s, gw: gw}
}

type clientInput struct {
	Name    string `json:"name" validate:"required,min=1,max=128"`
	Phone   string `json:"phone" validate:"max=32"`
	Address string `json:"address" validate:"max=255"`
	Type    string `json:"type" validate:"omitempty,oneof=CASH CREDIT"`
}

func (ctl *ClientController) List(c *fiber.Ctx) error {
	return c.JSON(ctl.store.Clients())
}

// Save creates or edits a client, upserting by name. The same endpoint
// serves both cases; the name is the identity.
func (ctl *ClientController) Save(c *fiber.Ctx) error {
	var input clientInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	client := ctl.store.SaveClient(models.Client{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Type:    input.Type,
	})
	return c.Status(fiber.StatusCreated).JSON(client)
}

// Update patches a client found by id, without renaming it into a collision.
func (ctl *ClientController) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch struct {
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Type    *string `json:"type"`
	}
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)
	if patch.Type != nil && *patch.Type != models.ClientTypeCash && *patch.Type != models.ClientTypeCredit {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client type")
	}

	var current *models.Client
	for _, client := range ctl.store.Clients() {
		if client.Id == id {
			cl := client
			current = &cl
			break
		}
	}
	if current == nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}

	if patch.Phone != nil {
		current.Phone = *patch.Phone
	}
	if patch.Address != nil {
		current.Address = *patch.Address
	}
	if patch.Type != nil {
		current.Type = *patch.Type
	}

	saved := ctl.store.SaveClient(*current)
	return c.JSON(saved)
}

// Delete removes a client. Their sales stay in the ledger under the name
// snapshot.
func (ctl *ClientController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !ctl.store.DeleteClient(id) {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}
	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("delete", "client", id, actor, nil)
	return c.JSON(fiber.Map{"message": "client deleted"})
}
