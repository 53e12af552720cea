// Package config loads runtime settings from the environment. A local
// .env file is honored when present; real deployments set the variables
// directly.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	Port       string
	AdminToken string

	// Store selects the persistence backend: "sqlite" or "memory".
	Store    string
	DataPath string

	PageSpeedEndpoint string
	PageSpeedKey      string

	// Screenshots selects the capture backend: "chromedp" or "off".
	Screenshots string
	ChromePath  string

	DefaultLocale string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment, after loading .env.development or .env if
// one exists. Missing files are not errors.
func Load() (Config, error) {
	if err := godotenv.Load(".env.development"); err != nil {
		godotenv.Load()
	}

	cfg := Config{
		Env:               getenv("APP_ENV", "development"),
		Port:              getenv("PORT", "8080"),
		AdminToken:        os.Getenv("ADMIN_TOKEN"),
		Store:             getenv("STORE", "sqlite"),
		DataPath:          getenv("DATA_PATH", "./data/webcheck.db"),
		PageSpeedEndpoint: getenv("PAGESPEED_ENDPOINT", ""),
		PageSpeedKey:      os.Getenv("PAGESPEED_API_KEY"),
		Screenshots:       getenv("SCREENSHOTS", "off"),
		ChromePath:        os.Getenv("CHROME_PATH"),
		DefaultLocale:     getenv("DEFAULT_LOCALE", "de"),
	}

	switch cfg.Store {
	case "sqlite", "memory":
	default:
		return cfg, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
	switch cfg.Screenshots {
	case "chromedp", "off":
	default:
		return cfg, fmt.Errorf("unknown SCREENSHOTS %q", cfg.Screenshots)
	}
	return cfg, nil
}
