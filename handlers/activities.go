package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"cosmicfit-api/middleware"
	"cosmicfit-api/services"
)

func SetupActivityRoutes(app *fiber.App, activityService *services.ActivityService, jwtSecret string) {
	activities := app.Group("/activities", middleware.RequireWallet(jwtSecret))

	activities.Post("/log", func(c *fiber.Ctx) error {
		type Req struct {
			ActivityType string   `json:"activity_type"`
			Distance     *float64 `json:"distance"`
			Duration     *int     `json:"duration"`
			Date         string   `json:"date"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "date must be YYYY-MM-DD",
			})
		}

		activity, err := activityService.Log(middleware.Wallet(c), services.ActivityInput{
			ActivityType: req.ActivityType,
			Distance:     req.Distance,
			Duration:     req.Duration,
			Date:         date,
		})
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to log activity",
				"cause": err.Error(),
			})
		}
		return c.JSON(activity)
	})

	activities.Get("/me", func(c *fiber.Ctx) error {
		list, err := activityService.ListByWallet(middleware.Wallet(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list activities",
				"cause": err.Error(),
			})
		}
		return c.JSON(list)
	})
}
