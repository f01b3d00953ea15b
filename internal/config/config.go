// Package config holds the configuration of the gnome-wallpaper command.
package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/MatthiasKunnen/gnome-wallpaper/pkg/wallpaper"
	"os"
	"time"
)

const (
	BackendGNOME       = "gnome"
	BackendFreedesktop = "freedesktop"
	BackendLogind      = "logind"
)

type Config struct {
	Wallpaper  WallpaperConfig  `toml:"wallpaper"`
	ScreenLock ScreenLockConfig `toml:"screenlock"`
	Logging    LoggingConfig    `toml:"logging"`
}

// WallpaperConfig selects the settings schema and the keys that receive the wallpaper URI.
type WallpaperConfig struct {
	Schema string   `toml:"schema"`
	Keys   []string `toml:"keys"`
}

// ScreenLockConfig selects how the screen lock state is queried.
type ScreenLockConfig struct {
	Backend   string `toml:"backend"`
	TimeoutMs int64  `toml:"timeout_ms"`
	SessionID string `toml:"session_id"` // logind backend only
}

// LoggingConfig controls logging behavior. An empty File logs to stderr.
type LoggingConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

func Default() *Config {
	return &Config{
		Wallpaper: WallpaperConfig{
			Schema: wallpaper.DefaultSchema,
			Keys:   []string{wallpaper.KeyPicture, wallpaper.KeyPictureDark},
		},
		ScreenLock: ScreenLockConfig{
			Backend:   BackendGNOME,
			TimeoutMs: 0, // library default
			SessionID: os.Getenv("XDG_SESSION_ID"),
		},
		Logging: LoggingConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 2,
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path and the environment.
// A missing file is not an error when path is empty.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	LoadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Timeout returns the configured default reply timeout, zero means the library default.
func (s ScreenLockConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

func (c *Config) Validate() error {
	if c.Wallpaper.Schema == "" {
		return errors.New("wallpaper schema cannot be empty")
	}

	if len(c.Wallpaper.Keys) == 0 {
		return errors.New("at least one wallpaper key is required")
	}

	switch c.ScreenLock.Backend {
	case BackendGNOME, BackendFreedesktop:
	case BackendLogind:
		if c.ScreenLock.SessionID == "" {
			return errors.New("the logind backend requires a session id")
		}
	default:
		return fmt.Errorf("unknown screenlock backend %q", c.ScreenLock.Backend)
	}

	if c.ScreenLock.TimeoutMs < 0 {
		return fmt.Errorf("screenlock timeout cannot be negative, got %d", c.ScreenLock.TimeoutMs)
	}

	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return errors.New("log rotation limits cannot be negative")
	}

	return nil
}
