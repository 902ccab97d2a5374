// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// DevSessionSecret is used when IGBOOST_SESSION_SECRET is unset. Fine for
// local development, never for a deployment.
const DevSessionSecret = "igboost-dev-secret"

// Config holds the daemon's settings.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string
	// SessionSecret signs the session cookies.
	SessionSecret string
	// DataDir holds the sqlite database.
	DataDir string
	// Backend selects the store: "sqlite" or "memory".
	Backend string

	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

// Load reads configuration from IGBOOST_* environment variables, filling in
// defaults for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          envOr("IGBOOST_ADDR", ":5000"),
		SessionSecret: os.Getenv("IGBOOST_SESSION_SECRET"),
		DataDir:       os.Getenv("IGBOOST_DATA_DIR"),
		Backend:       envOr("IGBOOST_BACKEND", "sqlite"),
		AdminUsername: envOr("IGBOOST_ADMIN_USERNAME", "david"),
		AdminPassword: envOr("IGBOOST_ADMIN_PASSWORD", "david@@@"),
		AdminEmail:    envOr("IGBOOST_ADMIN_EMAIL", "admin@igboost.com"),
	}

	if cfg.SessionSecret == "" {
		log.Println("config: IGBOOST_SESSION_SECRET unset, using development secret")
		cfg.SessionSecret = DevSessionSecret
	}

	switch cfg.Backend {
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("unknown backend %q (want sqlite or memory)", cfg.Backend)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".igboost")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
