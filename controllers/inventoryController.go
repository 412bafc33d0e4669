package controllers

import (
	"timberyard-backend/database"
	"timberyard-backend/middlewares"
	"timberyard-backend/models"
	"timberyard-backend/store"
	"timberyard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type InventoryController struct {
	store *store.Store
	gw    *database.Gateway
}

func NewInventoryController(s *store.Store, gw *database.Gateway) *InventoryController {
	return &InventoryController{store: s, gw: gw}
}

type itemInput struct {
	Name            string  `json:"name" validate:"required,min=1,max=128"`
	Code            string  `json:"code" validate:"required,min=1,max=64"`
	Type            string  `json:"type" validate:"max=64"`
	Length          float64 `json:"length" validate:"gte=0"`
	Width           float64 `json:"width" validate:"gte=0"`
	Thickness       float64 `json:"thickness" validate:"gte=0"`
	Origin          string  `json:"origin" validate:"max=64"`
	Bundles         float64 `json:"bundles" validate:"gte=0"`
	BoardsPerBundle int     `json:"boards_per_bundle" validate:"gte=0"`
	BuyPrice        float64 `json:"buy_price" validate:"gte=0"`
	SellPrice       float64 `json:"sell_price" validate:"gte=0"`
}

func (in *itemInput) toModel() models.ProductItem {
	return models.ProductItem{
		Name:            in.Name,
		Code:            in.Code,
		Type:            in.Type,
		Length:          in.Length,
		Width:           in.Width,
		Thickness:       in.Thickness,
		Origin:          in.Origin,
		Bundles:         in.Bundles,
		BoardsPerBundle: in.BoardsPerBundle,
		BuyPrice:        in.BuyPrice,
		SellPrice:       in.SellPrice,
	}
}

func (ctl *InventoryController) List(c *fiber.Ctx) error {
	return c.JSON(ctl.store.Inventory())
}

// Create accepts one item or a batch of items; each is upserted by code.
func (ctl *InventoryController) Create(c *fiber.Ctx) error {
	var inputs []itemInput
	if err := c.BodyParser(&inputs); err != nil {
		// Not an array: retry as a single object.
		var one itemInput
		if err2 := c.BodyParser(&one); err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		inputs = []itemInput{one}
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty item list")
	}

	created := make([]models.ProductItem, 0, len(inputs))
	for i := range inputs {
		utils.NormalizeDTO(&inputs[i])
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		created = append(created, ctl.store.SaveItem(inputs[i].toModel()))
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update patches an existing item by id. Only provided fields change; the
// code stays the upsert key so it cannot collide with another item's.
func (ctl *InventoryController) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch struct {
		Name            *string  `json:"name"`
		Type            *string  `json:"type"`
		Length          *float64 `json:"length"`
		Width           *float64 `json:"width"`
		Thickness       *float64 `json:"thickness"`
		Origin          *string  `json:"origin"`
		Bundles         *float64 `json:"bundles"`
		BoardsPerBundle *int     `json:"boards_per_bundle"`
		BuyPrice        *float64 `json:"buy_price"`
		SellPrice       *float64 `json:"sell_price"`
	}
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	var current *models.ProductItem
	for _, item := range ctl.store.Inventory() {
		if item.Id == id {
			it := item
			current = &it
			break
		}
	}
	if current == nil {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}

	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Type != nil {
		current.Type = *patch.Type
	}
	if patch.Length != nil {
		current.Length = *patch.Length
	}
	if patch.Width != nil {
		current.Width = *patch.Width
	}
	if patch.Thickness != nil {
		current.Thickness = *patch.Thickness
	}
	if patch.Origin != nil {
		current.Origin = *patch.Origin
	}
	if patch.Bundles != nil {
		current.Bundles = *patch.Bundles
	}
	if patch.BoardsPerBundle != nil {
		current.BoardsPerBundle = *patch.BoardsPerBundle
	}
	if patch.BuyPrice != nil {
		current.BuyPrice = *patch.BuyPrice
	}
	if patch.SellPrice != nil {
		current.SellPrice = *patch.SellPrice
	}

	saved := ctl.store.SaveItem(*current)
	return c.JSON(saved)
}

// Delete hard-deletes an item. Historical sales keep their name snapshots.
func (ctl *InventoryController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !ctl.store.DeleteItem(id) {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}
	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("delete", "item", id, actor, nil)
	return c.JSON(fiber.Map{"message": "item deleted"})
}
