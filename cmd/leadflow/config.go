package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type config struct {
	Env          string
	Port         string
	DatabasePath string
	LogLevel     slog.Level
	PhoneRegion  string
	MaxWorkers   int
}

// loadConfig reads settings from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	cfg := config{
		Env:          envOrDefault("APP_ENV", "development"),
		Port:         envOrDefault("PORT", "8080"),
		DatabasePath: envOrDefault("DATABASE_PATH", "leadflow.db"),
		PhoneRegion:  strings.ToUpper(envOrDefault("PHONE_REGION", "US")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return config{}, fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}

	workers, err := strconv.Atoi(envOrDefault("RIVER_MAX_WORKERS", "2"))
	if err != nil || workers < 1 {
		return config{}, fmt.Errorf("RIVER_MAX_WORKERS must be a positive integer, got %q", os.Getenv("RIVER_MAX_WORKERS"))
	}
	cfg.MaxWorkers = workers

	return cfg, nil
}

// newLogger returns a JSON logger in production and a text logger elsewhere.
func newLogger(cfg config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.Env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
