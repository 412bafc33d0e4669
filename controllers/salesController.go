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

type SalesController struct {
	store *store.Store
	gw    *database.Gateway
}

func NewSalesController(s *store.Store, gw *database.Gateway) *SalesController {
	return &SalesController{store: s, gw: gw}
}

type saleLineInput struct {
	ItemId     string  `json:"item_id" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"required,gt=0"`
	UnitType   string  `json:"unit_type" validate:"required,oneof=bundle board"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
	ClientName string  `json:"client_name" validate:"required,min=1,max=128"`
	Date       string  `json:"date"` // optional, RFC3339 or YYYY-MM-DD
}

func (in *saleLineInput) toModel() (models.Sale, error) {
	sale := models.Sale{
		ItemId:     in.ItemId,
		Quantity:   in.Quantity,
		UnitType:   in.UnitType,
		UnitPrice:  in.UnitPrice,
		ClientName: in.ClientName,
	}
	if in.Date != "" {
		t, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			t, err = time.Parse("2006-01-02", in.Date)
			if err != nil {
				return sale, fiber.NewError(fiber.StatusBadRequest, "invalid date format")
			}
		}
		sale.Date = t
	}
	return sale, nil
}

// List returns the sale ledger, newest first, optionally limited by ?limit=.
func (ctl *SalesController) List(c *fiber.Ctx) error {
	sales := ctl.store.Sales()
	limit := utils.ParseIntDefault(c.Query("limit"), 0)
	if limit > 0 && limit < len(sales) {
		sales = sales[:limit]
	}
	return c.JSON(sales)
}

// Submit books one sale batch as a single invoice. All lines share an
// invoice id; a shortage on any line rejects the whole batch.
func (ctl *SalesController) Submit(c *fiber.Ctx) error {
	var inputs []saleLineInput
	if err := c.BodyParser(&inputs); err != nil {
		var one saleLineInput
		if err2 := c.BodyParser(&one); err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		inputs = []saleLineInput{one}
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty sale batch")
	}

	lines := make([]models.Sale, 0, len(inputs))
	for i := range inputs {
		utils.NormalizeDTO(&inputs[i])
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		sale, err := inputs[i].toModel()
		if err != nil {
			return err
		}
		lines = append(lines, sale)
	}

	booked, err := ctl.store.SubmitSaleBatch(lines)
	if err != nil {
		return err // ShortageError maps to 409 in the error handler
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"invoice_id": booked[0].InvoiceId,
		"lines":      booked,
	})
}

// Delete removes a ledger entry without restoring stock.
func (ctl *SalesController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !ctl.store.DeleteSale(id) {
		return fiber.NewError(fiber.StatusNotFound, "sale not found")
	}
	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("delete", "sale", id, actor, nil)
	return c.JSON(fiber.Map{"message": "sale deleted"})
}
