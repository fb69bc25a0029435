/* Startup configuration loaded from environment variables. */

package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr          string
	DatabasePath  string
	JWTSecret     string
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration
	Debug         bool
}

// Load reads the configuration from environment variables.
// Call godotenv.Load() before this to pick up a local .env file.
func Load() Config {
	cfg := Config{
		Addr:          getEnv("ADDR", ":8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "./finance_advisor.db"),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434/api/generate"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),
		OllamaTimeout: 60 * time.Second,
		Debug:         os.Getenv("DEBUG") == "true",
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "default_secret_key" // development fallback, never for production
		log.Println("Warning: JWT_SECRET_KEY environment variable is not set. Using default key.")
	}

	if raw := os.Getenv("OLLAMA_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Printf("Warning: invalid OLLAMA_TIMEOUT_SECONDS %q, keeping %v", raw, cfg.OllamaTimeout)
		} else {
			cfg.OllamaTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
