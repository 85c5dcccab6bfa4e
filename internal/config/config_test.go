// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Backend URL should default to localhost:8000, got %s", cfg.Backend.URL)
	}
	if cfg.Defaults.Symbol != "HBAR" {
		t.Errorf("Symbol should default to HBAR, got %s", cfg.Defaults.Symbol)
	}
	if cfg.Defaults.MaxRounds != 2 {
		t.Errorf("MaxRounds should default to 2, got %d", cfg.Defaults.MaxRounds)
	}
	if !cfg.History.Enabled {
		t.Error("History should be enabled by default")
	}
}

func TestMaxRoundsClamped(t *testing.T) {
	for _, bad := range []int{0, -1, 4, 99} {
		cfg := &Config{Defaults: DefaultsConfig{MaxRounds: bad}}
		applyDefaults(cfg)
		if cfg.Defaults.MaxRounds != 2 {
			t.Errorf("MaxRounds %d should reset to 2, got %d", bad, cfg.Defaults.MaxRounds)
		}
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("ALPHADUEL_BACKEND", "http://duel.internal:9000")

	path := filepath.Join(dir, "alphaduel")
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	content := "backend:\n  url: $ALPHADUEL_BACKEND\ndefaults:\n  symbol: BTC\n  max_rounds: 3\n"
	if err := os.WriteFile(filepath.Join(path, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Backend.URL != "http://duel.internal:9000" {
		t.Errorf("env var not expanded: %s", cfg.Backend.URL)
	}
	if cfg.Defaults.Symbol != "BTC" || cfg.Defaults.MaxRounds != 3 {
		t.Errorf("config values not applied: %+v", cfg.Defaults)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Defaults.Symbol != "HBAR" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
