package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Env  string
	Port string

	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret string

	// The persistence layer is a pair of JSON files behind the GitHub
	// contents API; these mirror the old client's VITE_* settings.
	StoreToken      string
	UsersFileURL    string
	TransactionsURL string

	DiscordWebhookURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		RedisURL:          getEnv("REDIS_URL", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		StoreToken:        os.Getenv("GITHUB_TOKEN"),
		UsersFileURL:      os.Getenv("CONFIG_URL"),
		TransactionsURL:   os.Getenv("TRANSACTIONS_URL"),
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		cfg.RedisDB = n
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.UsersFileURL == "" || cfg.TransactionsURL == "" {
		return nil, fmt.Errorf("CONFIG_URL and TRANSACTIONS_URL are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
