package controllers

import (
	"time"

	"timberyard-backend/database"
	"timberyard-backend/middlewares"
	"timberyard-backend/models"
	"timberyard-backend/store"
	"timberyard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type PurchaseController struct {
	store *store.Store
	gw    *database.Gateway
}

func NewPurchaseController(s *store.Store, gw *database.Gateway) *PurchaseController {
	return &PurchaseController{store: s, gw: gw}
}

type purchaseInput struct {
	ItemId          string  `json:"item_id" validate:"required"`
	QuantityBundles float64 `json:"quantity_bundles" validate:"required,gt=0"`
	Cost            float64 `json:"cost" validate:"gte=0"`
	Supplier        string  `json:"supplier" validate:"max=128"`
	Date            string  `json:"date"`
}

func (ctl *PurchaseController) List(c *fiber.Ctx) error {
	purchases := ctl.store.Purchases()
	limit := utils.ParseIntDefault(c.Query("limit"), 0)
	if limit > 0 && limit < len(purchases) {
		purchases = purchases[:limit]
	}
	return c.JSON(purchases)
}

// Create books a restock: the purchase record plus the bundle increment on
// the item. A purchase for an unknown item still records; it just moves no
// stock.
func (ctl *PurchaseController) Create(c *fiber.Ctx) error {
	var input purchaseInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	purchase := models.Purchase{
		ItemId:          input.ItemId,
		QuantityBundles: input.QuantityBundles,
		Cost:            input.Cost,
		Supplier:        input.Supplier,
	}
	if input.Date != "" {
		t, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			t, err = time.Parse("2006-01-02", input.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid date format")
			}
		}
		purchase.Date = t
	}

	booked := ctl.store.AddPurchase(purchase)
	return c.Status(fiber.StatusCreated).JSON(booked)
}

// Delete removes a restock record; the bundles it delivered stay.
func (ctl *PurchaseController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !ctl.store.DeletePurchase(id) {
		return fiber.NewError(fiber.StatusNotFound, "purchase not found")
	}
	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("delete", "purchase", id, actor, nil)
	return c.JSON(fiber.Map{"message": "purchase deleted"})
}
