package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cosmicfit-api/middleware"
	"cosmicfit-api/services"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService, jwtSecret string) {
	// Auth is optional here: anonymous callers get the ranking, signed-in
	// callers additionally get their own row flagged.
	app.Get("/leaderboard", middleware.OptionalWallet(jwtSecret), func(c *fiber.Ctx) error {
		entries, err := leaderboardService.Ranking(middleware.Wallet(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(entries)
	})
}
