package config

import (
	"os"
	"strings"
)

// AppConfig holds everything the server reads from the environment.
type AppConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// SaveDir is where file-based game saves live.
	SaveDir string

	// RedisURL switches persistence to redis when set, e.g.
	// "redis://localhost:6379/0". Empty means file saves.
	RedisURL string

	// AllowedOrigins loosens the websocket origin check, comma separated.
	AllowedOrigins []string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Addr:    ":8080",
		SaveDir: "saves",
	}

	if v := strings.TrimSpace(os.Getenv("ADDR")); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("SAVE_DIR")); v != "" {
		cfg.SaveDir = v
	}
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, s)
			}
		}
	}

	return cfg, nil
}
