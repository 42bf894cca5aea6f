package calchub

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds server settings. Values come from defaults, then an
// optional TOML file, then CALCHUB_* environment variables; flags on the
// binary override all of these.
type Config struct {
	Addr         string `toml:"addr"`
	LogLevel     string `toml:"log_level"`
	HistoryLimit int    `toml:"history_limit"`
	ReadTimeout  int    `toml:"read_timeout_seconds"`
	WriteTimeout int    `toml:"write_timeout_seconds"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		LogLevel:     "info",
		HistoryLimit: 1000,
		ReadTimeout:  60,
		WriteTimeout: 60,
	}
}

// LoadConfig builds the effective configuration: defaults, then the TOML
// file at path if path is non-empty, then environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CALCHUB_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("CALCHUB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CALCHUB_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.HistoryLimit = n
		}
	}
}

// Validate checks settings the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}
