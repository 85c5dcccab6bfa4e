// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type BackendConfig struct {
	URL string `yaml:"url"`
}

type DefaultsConfig struct {
	Symbol    string `yaml:"symbol"`
	MaxRounds int    `yaml:"max_rounds"`
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Defaults DefaultsConfig `yaml:"defaults"`
	History  HistoryConfig  `yaml:"history"`
	Log      LogConfig      `yaml:"log"`
}

func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return defaults if no config file
		return defaultConfig(), nil
	}

	// Expand environment variables in config
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigPath(), err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{History: HistoryConfig{Enabled: true}}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.URL == "" {
		cfg.Backend.URL = "http://localhost:8000"
	}
	if cfg.Defaults.Symbol == "" {
		cfg.Defaults.Symbol = "HBAR"
	}
	if cfg.Defaults.MaxRounds < 1 || cfg.Defaults.MaxRounds > 3 {
		cfg.Defaults.MaxRounds = 2
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}

func ConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, "alphaduel", "config.yaml")
}
