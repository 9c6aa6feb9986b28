// Package config manages Meu Mundo server configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/meu-mundo/meumundo/internal/app/history"
)

// Config holds all server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Game    GameConfig    `toml:"game"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig controls the SQLite data directory.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// GameConfig controls game-engine behavior.
type GameConfig struct {
	// Timezone is the fixed reference timezone for calendar-day
	// boundaries (streaks, catch-up, "today"). Never system-local.
	Timezone string `toml:"timezone"`
	// CooldownHours gates the relax and work-bonus actions.
	CooldownHours int `toml:"cooldown_hours"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	home := mundoHome()
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8787,
		},
		Storage: StorageConfig{
			Dir: filepath.Join(home, "data"),
		},
		Game: GameConfig{
			Timezone:      history.ReferenceZone,
			CooldownHours: 3,
		},
	}
}

// Load reads config from $MEUMUNDO_HOME/config.toml, falling back to
// defaults when the file does not exist.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(mundoHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Game.CooldownHours <= 0 {
		cfg.Game.CooldownHours = 3
	}
	return cfg, nil
}

// Save writes the config to $MEUMUNDO_HOME/config.toml.
func Save(cfg Config) error {
	path := filepath.Join(mundoHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// mundoHome returns the Meu Mundo data directory.
func mundoHome() string {
	if env := os.Getenv("MEUMUNDO_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".meumundo")
}

// Home is exported for use by other packages.
func Home() string {
	return mundoHome()
}
