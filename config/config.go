package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// zeroAddress is the default verifying contract until a deployment sets one.
const zeroAddress = "0x0000000000000000000000000000000000000000"

// Config holds all service configuration, loaded from the environment.
type Config struct {
	// HTTP
	ListenAddr     string
	AllowedOrigins string

	// Persistence. Postgres DSNs are detected by prefix; anything else is
	// treated as a sqlite file path.
	DatabaseURL string

	// Sessions
	JWTSecret string
	JWTTTL    time.Duration

	// Voucher signing. An empty AdminPrivateKey leaves the signer
	// unconfigured; claim issuing then fails with a distinct error
	// instead of the whole service refusing to start.
	AdminPrivateKey      string
	ChainID              int64
	RewardManagerAddress string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:           getEnv("LISTEN_ADDR", ":5100"),
		AllowedOrigins:       getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		DatabaseURL:          getEnv("DATABASE_URL", "fitness.db"),
		JWTSecret:            getEnv("JWT_SECRET", "dev_secret"),
		AdminPrivateKey:      getEnv("ADMIN_PRIVATE_KEY", ""),
		RewardManagerAddress: getEnv("REWARD_MANAGER_ADDRESS", zeroAddress),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	ttlMinutes, err := parseIntEnv("JWT_EXPIRE_MINUTES", 43200)
	if err != nil {
		return cfg, err
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	chainID, err := parseIntEnv("CHAIN_ID", 1)
	if err != nil {
		return cfg, err
	}
	cfg.ChainID = int64(chainID)

	if !common.IsHexAddress(cfg.RewardManagerAddress) {
		return cfg, fmt.Errorf("REWARD_MANAGER_ADDRESS is not a valid address: %q", cfg.RewardManagerAddress)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
