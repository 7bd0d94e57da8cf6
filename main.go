package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cosmicfit-api/config"
	"cosmicfit-api/handlers"
	"cosmicfit-api/logger"
	"cosmicfit-api/models"
	"cosmicfit-api/services"
)

func main() {
	// No .env file is fine in deployed environments; env vars come from
	// the host there.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatal("invalid configuration", zap.Error(err))
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	db, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.RewardClaim{},
	); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	signer, err := services.NewVoucherSigner(cfg.AdminPrivateKey, cfg.ChainID, cfg.RewardManagerAddress)
	if err != nil {
		log.Fatal("failed to load signing key", zap.Error(err))
	}
	if signer.Configured() {
		log.Info("voucher signer ready", zap.String("signer", signer.Address().Hex()))
	} else {
		log.Warn("ADMIN_PRIVATE_KEY not set, reward claims will be rejected")
	}

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL, log)
	activityService := services.NewActivityService(db, log)
	badgeService := services.NewBadgeService(db)
	rewardService := services.NewRewardService(db, signer, log)
	leaderboardService := services.NewLeaderboardService(db)

	app := fiber.New()

	allowedOrigins := make([]string, 0)
	for _, origin := range strings.Split(cfg.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handlers.SetupAuthRoutes(app, authService, cfg.JWTSecret)
	handlers.SetupActivityRoutes(app, activityService, cfg.JWTSecret)
	handlers.SetupBadgeRoutes(app, badgeService, cfg.JWTSecret)
	handlers.SetupRewardRoutes(app, rewardService, cfg.JWTSecret)
	handlers.SetupLeaderboardRoutes(app, leaderboardService, cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()
	log.Info("server running", zap.String("addr", cfg.ListenAddr))

	<-ctx.Done()
	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

// openDatabase opens postgres for postgres DSNs and sqlite for plain file
// paths. TranslateError maps driver unique-violation errors onto
// gorm.ErrDuplicatedKey, which the claim path depends on.
func openDatabase(databaseURL string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{TranslateError: true}
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return gorm.Open(postgres.Open(databaseURL), gormConfig)
	}
	return gorm.Open(sqlite.Open(databaseURL), gormConfig)
}
