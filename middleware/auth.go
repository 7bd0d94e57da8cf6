package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cosmicfit-api/services"
)

// walletLocal is the fiber.Ctx locals key the verified wallet is stored
// under, as a checksummed hex string.
const walletLocal = "wallet"

// RequireWallet rejects requests without a valid Bearer session token and
// attaches the checksummed wallet address to the request context.
func RequireWallet(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet, err := walletFromRequest(c, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing token",
			})
		}
		c.Locals(walletLocal, wallet)
		return c.Next()
	}
}

// OptionalWallet attaches the wallet when a valid token is present but lets
// anonymous requests through. Used by the leaderboard to mark the caller's
// own row.
func OptionalWallet(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if wallet, err := walletFromRequest(c, jwtSecret); err == nil {
			c.Locals(walletLocal, wallet)
		}
		return c.Next()
	}
}

// Wallet returns the authenticated wallet stored by RequireWallet or
// OptionalWallet, or "" when the request is anonymous.
func Wallet(c *fiber.Ctx) string {
	if wallet, ok := c.Locals(walletLocal).(string); ok {
		return wallet
	}
	return ""
}

func walletFromRequest(c *fiber.Ctx, jwtSecret string) (string, error) {
	authorization := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(authorization, "Bearer ")
	if !found || token == "" {
		return "", errors.New("missing bearer token")
	}
	wallet, err := services.WalletFromToken(token, jwtSecret)
	if err != nil {
		return "", err
	}
	return wallet.Hex(), nil
}
