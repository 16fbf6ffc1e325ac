// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	ChatID           int64
	ConfigPath       string
	SnapshotsPath    string
	LogLevel         string
}

// Load reads configuration from environment variables.
// Missing credentials are an error; the process must not start without them.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	rawChat := os.Getenv("TELEGRAM_CHAT_ID")
	if rawChat == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	chatID, err := strconv.ParseInt(rawChat, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", rawChat, err)
	}

	return &Config{
		TelegramBotToken: token,
		ChatID:           chatID,
		ConfigPath:       envOrDefault("CONFIG_PATH", "./data/monitor_config.json"),
		SnapshotsPath:    envOrDefault("SNAPSHOTS_PATH", "./data/page_snapshots.json"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
	}, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
