package controllers

import (
	"strings"

	"timberyard-backend/database"
	"timberyard-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	gw *database.Gateway
}

func NewAuthController(gw *database.Gateway) *AuthController {
	return &AuthController{gw: gw}
}

type loginInput struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=4,max=128"`
}

// Login checks credentials against the user table and hands out a JWT
// carrying the operator's role. Same message for unknown user and wrong
// password.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var data loginInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := ctl.gw.UserByUsername(strings.TrimSpace(data.Username))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid credentials"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "user lookup failed")
	}

	if err := user.ComparePassword(data.Password); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid credentials"})
	}

	token, err := middlewares.GenerateJWT(user.Id, user.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not sign token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.Id,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
