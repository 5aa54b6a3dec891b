// Package config loads runtime configuration from the environment
package config

import (
	"os"
	"strings"
)

// Config carries all runtime settings. The LLM keys are optional: a missing
// key disables the corresponding remote assistant tier, nothing else.
type Config struct {
	OpenWeatherAPIKey string
	HuggingFaceAPIKey string
	OpenAIAPIKey      string
	TelegramToken     string
	DBPath            string // empty selects the in-memory store
	ListenAddr        string
	DefaultLocation   string
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		OpenWeatherAPIKey: getenv("OPENWEATHER_API_KEY", ""),
		HuggingFaceAPIKey: getenv("HUGGINGFACE_API_KEY", ""),
		OpenAIAPIKey:      getenv("OPENAI_API_KEY", ""),
		TelegramToken:     getenv("TELEGRAM_BOT_TOKEN", ""),
		DBPath:            getenv("GARDEN_DB_PATH", ""),
		ListenAddr:        getenv("LISTEN_ADDR", ":8080"),
		DefaultLocation:   getenv("DEFAULT_LOCATION", "New York"),
	}
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
