// Package config loads the engine's JSON configuration file, validating
// it against an embedded schema and creating sane defaults on first use
// (§6.5).
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/nwpfetch/nwpfetch/internal/notify"
	"github.com/nwpfetch/nwpfetch/pkg/log"
)

// HTTP holds tunables for the shared HTTP client.
type HTTP struct {
	RatePerSecond      float64 `json:"rate_per_second"`
	Burst              int     `json:"burst"`
	HeadTimeoutSeconds float64 `json:"head_timeout_seconds"`
	GetTimeoutSeconds  float64 `json:"get_timeout_seconds"`
}

// Bulk holds tunables for the bulk orchestrator.
type Bulk struct {
	MaxWorkers int `json:"max_workers"`
}

// StatusServer holds the address for the optional health/metrics server.
type StatusServer struct {
	Addr string `json:"addr"`
}

// Config is the on-disk configuration document.
type Config struct {
	SaveDir         string        `json:"save_dir"`
	DefaultPriority []string      `json:"default_priority"`
	ExtensionDir    string        `json:"extension_dir"`
	HTTP            HTTP          `json:"http"`
	Bulk            Bulk          `json:"bulk"`
	Nats            notify.Config `json:"nats"`
	StatusServer    StatusServer  `json:"status_server"`
	LogLevel        string        `json:"log_level"`
}

// Default returns the configuration created on first use, before any
// file on disk is consulted.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		SaveDir:         filepath.Join(home, "data", "nwpfetch"),
		DefaultPriority: []string{},
		HTTP: HTTP{
			RatePerSecond:      0,
			Burst:              1,
			HeadTimeoutSeconds: 5,
			GetTimeoutSeconds:  30,
		},
		Bulk:     Bulk{MaxWorkers: 4},
		LogLevel: "info",
	}
}

// Path returns the default config file location,
// $XDG_CONFIG_HOME/nwpfetch/config.json (or its platform equivalent via
// os.UserConfigDir).
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nwpfetch", "config.json"), nil
}

// Load reads the config file at path, creating it with Default()'s
// values if it does not exist yet. A sibling ".env" file, if present, is
// loaded into the process environment via godotenv before ExpandEnv
// resolves any ${VAR} references in string fields.
func Load(path string) (Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Warnf("config: failed to load %s: %v", envPath, err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return Config{}, fmt.Errorf("config: write default config: %w", err)
		}
		log.Infof("config: wrote default configuration to %s", path)
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Validate(bytes.NewReader(raw)); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.SaveDir = os.ExpandEnv(cfg.SaveDir)
	cfg.ExtensionDir = os.ExpandEnv(cfg.ExtensionDir)
	return cfg, nil
}

// Save writes cfg to path as indented JSON, creating parent directories
// as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
