package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the resolved probe configuration.
type Config struct {
	Target       string
	Version      int
	Count        int
	Debug        int
	DialAttempts int
	Timeout      time.Duration
	Interval     time.Duration
}

// DefaultConfig returns the settings used when neither file nor flags
// override them.
func DefaultConfig() Config {
	return Config{
		Target:       "127.0.0.1:6653",
		Version:      4,
		Count:        3,
		DialAttempts: 1,
		Timeout:      5 * time.Second,
	}
}

type fileConfig struct {
	Target       string `toml:"target"`
	Version      int    `toml:"version"`
	Count        int    `toml:"count"`
	Debug        int    `toml:"debug"`
	DialAttempts int    `toml:"dial_attempts"`
	Timeout      string `toml:"timeout"`
	Interval     string `toml:"interval"`
}

// loadConfig overlays the TOML file at path onto the defaults. Only keys
// present in the file override.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load ofprobe config: %w", err)
	}

	if meta.IsDefined("target") {
		addr := strings.TrimSpace(raw.Target)
		if addr != "" {
			cfg.Target = addr
		}
	}

	if meta.IsDefined("version") {
		cfg.Version = raw.Version
	}

	if meta.IsDefined("count") {
		cfg.Count = raw.Count
	}

	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	if meta.IsDefined("dial_attempts") && raw.DialAttempts > 0 {
		cfg.DialAttempts = raw.DialAttempts
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}

	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Interval))
		if err != nil {
			return Config{}, fmt.Errorf("parse interval: %w", err)
		}
		cfg.Interval = d
	}

	return cfg, nil
}
