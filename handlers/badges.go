package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"cosmicfit-api/middleware"
	"cosmicfit-api/services"
)

func SetupBadgeRoutes(app *fiber.App, badgeService *services.BadgeService, jwtSecret string) {
	badges := app.Group("/badges", middleware.RequireWallet(jwtSecret))

	badges.Get("/me", func(c *fiber.Ctx) error {
		earned, err := badgeService.EarnedBadges(middleware.Wallet(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to derive badges",
				"cause": err.Error(),
			})
		}

		today := time.Now().Format("2006-01-02")
		response := make([]fiber.Map, 0, len(earned))
		for _, badge := range earned {
			response = append(response, fiber.Map{
				"id":          badge.ID,
				"name":        badge.Name,
				"description": badge.Description,
				"emoji":       badge.Emoji,
				"rarity":      badge.Rarity,
				"tokenId":     badge.TokenID,
				"ipfsUrl":     badge.IPFSURL,
				"mintDate":    today,
			})
		}
		return c.JSON(response)
	})
}
