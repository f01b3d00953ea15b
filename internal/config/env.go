package config

import (
	"os"
	"strconv"
	"strings"
)

const envPrefix = "GNOME_WALLPAPER_"

// LoadFromEnv overrides cfg with GNOME_WALLPAPER_* environment variables.
// Values that cannot be parsed are ignored.
func LoadFromEnv(cfg *Config) {
	if schema := os.Getenv(envPrefix + "SCHEMA"); schema != "" {
		cfg.Wallpaper.Schema = schema
	}

	if keys := os.Getenv(envPrefix + "KEYS"); keys != "" {
		cfg.Wallpaper.Keys = strings.Split(keys, ",")
	}

	if backend := os.Getenv(envPrefix + "SCREENLOCK_BACKEND"); backend != "" {
		cfg.ScreenLock.Backend = backend
	}

	if timeout := os.Getenv(envPrefix + "SCREENLOCK_TIMEOUT_MS"); timeout != "" {
		if ms, err := strconv.ParseInt(timeout, 10, 64); err == nil && ms >= 0 {
			cfg.ScreenLock.TimeoutMs = ms
		}
	}

	if level := os.Getenv(envPrefix + "LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	if file := os.Getenv(envPrefix + "LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
}
