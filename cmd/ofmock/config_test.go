package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigExample(t *testing.T) {
	cfg, err := loadConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:6653" {
		t.Fatalf("unexpected listen: %q", cfg.ListenAddr)
	}
	if cfg.MetricsAddr != "127.0.0.1:9653" {
		t.Fatalf("unexpected metrics addr: %q", cfg.MetricsAddr)
	}
	if cfg.Version != 4 || cfg.Debug != 0 || cfg.StrictXID {
		t.Fatalf("unexpected protocol settings: %+v", cfg)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Fatalf("unexpected read timeout: %v", cfg.ReadTimeout)
	}
}

func TestLoadConfigOverlaysOnlyDefinedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "listen = \"127.0.0.1:7653\"\nread_timeout = \"5s\"\nstrict_xid = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:7653" || cfg.ReadTimeout != 5*time.Second || !cfg.StrictXID {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Version != DefaultConfig().Version {
		t.Fatalf("undefined key must keep default, got version %d", cfg.Version)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("undefined key must keep default, got metrics addr %q", cfg.MetricsAddr)
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("read_timeout = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected duration parse error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
