package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	TelegramToken  string
	AdminChatID    int64
	Environment    string
	MigrationsPath string
}

func Load() (*Config, error) {
	// Load .env when present; plain environment variables otherwise
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if chatID := os.Getenv("ADMIN_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_ID must be an integer: %w", err)
		}
		cfg.AdminChatID = id
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken != "" && cfg.AdminChatID == 0 {
		return nil, fmt.Errorf("ADMIN_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}
