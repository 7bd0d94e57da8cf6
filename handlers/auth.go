package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cosmicfit-api/middleware"
	"cosmicfit-api/services"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, jwtSecret string) {
	auth := app.Group("/auth")

	auth.Post("/siwe", func(c *fiber.Ctx) error {
		type Req struct {
			Message   string `json:"message"`
			Signature string `json:"signature"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		token, err := authService.Login(req.Message, req.Signature)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid sign-in payload",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "login failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"token": token})
	})

	auth.Get("/me", middleware.RequireWallet(jwtSecret), func(c *fiber.Ctx) error {
		wallet := middleware.Wallet(c)
		profile, err := authService.GetProfile(wallet)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "user not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"wallet_address": wallet,
			"profile":        profile,
		})
	})
}
