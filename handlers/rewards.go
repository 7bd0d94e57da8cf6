package handlers

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"

	"cosmicfit-api/middleware"
	"cosmicfit-api/services"
)

func SetupRewardRoutes(app *fiber.App, rewardService *services.RewardService, jwtSecret string) {
	rewards := app.Group("/rewards", middleware.RequireWallet(jwtSecret))

	rewards.Get("/pending", func(c *fiber.Ctx) error {
		pending, err := rewardService.PendingRewards(middleware.Wallet(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to resolve pending rewards",
				"cause": err.Error(),
			})
		}
		return c.JSON(pending)
	})

	rewards.Post("/claim", func(c *fiber.Ctx) error {
		type Req struct {
			RewardID string `json:"rewardId"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		wallet := common.HexToAddress(middleware.Wallet(c))
		voucher, err := rewardService.Claim(wallet, req.RewardID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnknownReward):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "unknown reward",
				})
			case errors.Is(err, services.ErrSignerUnavailable):
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "reward signer not configured",
				})
			case errors.Is(err, services.ErrConcurrentClaim):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "claim conflict, retry",
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "claim failed",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(voucher)
	})

	rewards.Get("/history", func(c *fiber.Ctx) error {
		history, err := rewardService.ClaimHistory(middleware.Wallet(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list claim history",
				"cause": err.Error(),
			})
		}
		return c.JSON(history)
	})
}
