package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Oracle
	OracleProvider string // "gemini" or "mock"
	GeminiAPIKey   string
	ModelName      string

	// Game generation
	NumVillagers        int
	InaccessibleDefault int

	// Completion records
	RedisURL string

	// Settlement (optional; empty URL disables on-chain claims)
	SettlementURL        string
	SettlementPackageID  string
	SettlementTreasuryID string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		OracleProvider: getEnv("ORACLE_PROVIDER", "gemini"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		ModelName:      getEnv("MODEL_NAME", "gemini-2.5-flash-lite"),

		RedisURL: getEnv("REDIS_URL", "localhost:6379"),

		SettlementURL:        getEnv("SETTLEMENT_URL", ""),
		SettlementPackageID:  getEnv("SETTLEMENT_PACKAGE_ID", ""),
		SettlementTreasuryID: getEnv("SETTLEMENT_TREASURY_ID", ""),
	}

	var err error
	cfg.NumVillagers, err = getEnvInt("NUM_VILLAGERS", 8)
	if err != nil {
		return nil, err
	}
	cfg.InaccessibleDefault, err = getEnvInt("NUM_INACCESSIBLE_LOCATIONS", 3)
	if err != nil {
		return nil, err
	}

	if cfg.NumVillagers < 1 {
		return nil, fmt.Errorf("NUM_VILLAGERS must be at least 1")
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
