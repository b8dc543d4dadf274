package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the process configuration. Team size and round quotas are
// not here: they arrive per start_game call.
type Config struct {
	Port          string
	AllowedOrigin string // host pattern for the websocket origin check
	LogFile       string
}

// Load reads configuration from the environment, with a local .env file
// taken into account when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          "5000",
		AllowedOrigin: "localhost:3000",
		LogFile:       "app.log",
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v, ok := os.LookupEnv("ALLOWED_ORIGIN"); ok {
		cfg.AllowedOrigin = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	return cfg
}
