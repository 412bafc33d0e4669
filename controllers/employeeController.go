package controllers

import (
	"timberyard-backend/database"
	"timberyard-backend/middlewares"
	"timberyard-backend/models"
	"timberyard-backend/store"
	"timberyard-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type EmployeeController struct {
	store *store.Store
	gw    *database.Gateway
}

func NewEmployeeController(s *store.Store, gw *database.Gateway) *EmployeeController {
	return &EmployeeController{store: s, gw: gw}
}

type employeeInput struct {
	Name     string  `json:"name" validate:"required,min=1,max=128"`
	Position string  `json:"position" validate:"max=64"`
	Salary   float64 `json:"salary" validate:"gte=0"`
}

type advanceInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (ctl *EmployeeController) List(c *fiber.Ctx) error {
	return c.JSON(ctl.store.Employees())
}

// Save creates or edits an employee, upserting by name. Advances are not
// settable here; they only move through the advance endpoint.
func (ctl *EmployeeController) Save(c *fiber.Ctx) error {
	var input employeeInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	existing := models.Employee{
		Name:     input.Name,
		Position: input.Position,
		Salary:   input.Salary,
	}
	// Preserve the accumulated advances across an edit.
	for _, e := range ctl.store.Employees() {
		if e.Name == input.Name {
			existing.Advances = e.Advances
			break
		}
	}

	employee := ctl.store.SaveEmployee(existing)
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// AddAdvance books a salary advance against an employee's running total.
func (ctl *EmployeeController) AddAdvance(c *fiber.Ctx) error {
	id := c.Params("id")

	var input advanceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	employee, err := ctl.store.AddAdvance(id, input.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "employee not found")
	}

	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("advance", "employee", id, actor, fiber.Map{"amount": input.Amount})
	return c.JSON(employee)
}

func (ctl *EmployeeController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if !ctl.store.DeleteEmployee(id) {
		return fiber.NewError(fiber.StatusNotFound, "employee not found")
	}
	actor, _ := c.Locals("userID").(string)
	ctl.gw.RecordAudit("delete", "employee", id, actor, nil)
	return c.JSON(fiber.Map{"message": "employee deleted"})
}
