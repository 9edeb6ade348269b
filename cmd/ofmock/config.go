package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the resolved daemon configuration.
type Config struct {
	ListenAddr  string
	MetricsAddr string
	Version     int
	Debug       int
	StrictXID   bool
	ReadTimeout time.Duration
}

// DefaultConfig returns the settings used when neither file nor flags
// override them.
func DefaultConfig() Config {
	return Config{
		ListenAddr:  "127.0.0.1:6653",
		Version:     4,
		ReadTimeout: 30 * time.Second,
	}
}

type fileConfig struct {
	Listen      string `toml:"listen"`
	MetricsAddr string `toml:"metrics_addr"`
	Version     int    `toml:"version"`
	Debug       int    `toml:"debug"`
	StrictXID   bool   `toml:"strict_xid"`
	ReadTimeout string `toml:"read_timeout"`
}

// loadConfig overlays the TOML file at path onto the defaults. Only keys
// present in the file override.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load ofmock config: %w", err)
	}

	if meta.IsDefined("listen") {
		addr := strings.TrimSpace(raw.Listen)
		if addr != "" {
			cfg.ListenAddr = addr
		}
	}

	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	if meta.IsDefined("version") {
		cfg.Version = raw.Version
	}

	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	if meta.IsDefined("strict_xid") {
		cfg.StrictXID = raw.StrictXID
	}

	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}

	return cfg, nil
}
