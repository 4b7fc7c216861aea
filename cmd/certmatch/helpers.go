package main

import (
	"fmt"
	"os"

	"github.com/jonathan/certmatch/internal/config"
)

// loadConfig resolves the effective configuration: the optional config
// file merged over defaults, with DATABASE_URL and GEMINI_API_KEY taken
// from the environment when the file leaves them empty.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// requireDatabase returns an error when no database URL is configured.
func requireDatabase(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return nil
}

// requireAPIKey returns an error when no Gemini API key is configured.
func requireAPIKey(cfg *config.Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	return nil
}
