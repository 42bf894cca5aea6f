package calchub

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calchub.toml")
	content := `addr = ":9090"
log_level = "debug"
history_limit = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.LogLevel != "debug" || cfg.HistoryLimit != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.ReadTimeout != 60 {
		t.Errorf("read timeout = %d, want default 60", cfg.ReadTimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("CALCHUB_ADDR", ":7070")
	t.Setenv("CALCHUB_LOG_LEVEL", "warn")
	t.Setenv("CALCHUB_HISTORY_LIMIT", "25")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.LogLevel != "warn" || cfg.HistoryLimit != 25 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calchub.toml")
	if err := os.WriteFile(path, []byte("addr = \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CALCHUB_ADDR", ":6060")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":6060" {
		t.Errorf("addr = %q, want env to win over file", cfg.Addr)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"zero history", func(c *Config) { c.HistoryLimit = 0 }},
		{"negative history", func(c *Config) { c.HistoryLimit = -1 }},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }},
		{"zero write timeout", func(c *Config) { c.WriteTimeout = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
