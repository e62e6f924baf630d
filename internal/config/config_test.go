package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Dedup || !cfg.Pairing {
		t.Error("dedup and pairing default to enabled")
	}
	if cfg.Debounce() != 100*time.Millisecond {
		t.Errorf("Debounce = %v, want 100ms", cfg.Debounce())
	}
	if got := cfg.APIBaseURL(); got != "http://localhost:4316" {
		t.Errorf("APIBaseURL = %q", got)
	}
	if got := cfg.WebSocketURL(); got != "ws://localhost:4317/api/ws" {
		t.Errorf("WebSocketURL = %q", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	t.Setenv("STAGEVIEW_HOST", "")
	t.Setenv("STAGEVIEW_DEDUP", "")
	t.Setenv("STAGEVIEW_PAIRING", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Host != "localhost" || !cfg.Pairing {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileKeepsDefaultsForMissingFields(t *testing.T) {
	t.Setenv("STAGEVIEW_HOST", "")
	t.Setenv("STAGEVIEW_DEDUP", "")
	t.Setenv("STAGEVIEW_PAIRING", "")

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"host":"10.0.0.5","pairing":false}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Host != "10.0.0.5" || cfg.Pairing {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if !cfg.Dedup || cfg.APIPort != 4316 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"host":`), 0644)

	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STAGEVIEW_HOST", "stage.local")
	t.Setenv("STAGEVIEW_DEDUP", "false")
	t.Setenv("STAGEVIEW_PAIRING", "not-a-bool")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "stage.local" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Dedup {
		t.Error("STAGEVIEW_DEDUP=false not applied")
	}
	if !cfg.Pairing {
		t.Error("unparseable STAGEVIEW_PAIRING must be ignored")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("STAGEVIEW_HOST", "")
	t.Setenv("STAGEVIEW_DEDUP", "")
	t.Setenv("STAGEVIEW_PAIRING", "")

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.WSPort = 9000
	cfg.Dedup = false

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.WSPort != 9000 || loaded.Dedup {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Host = "" }},
		{"bad api port", func(c *Config) { c.APIPort = 0 }},
		{"bad ws port", func(c *Config) { c.WSPort = 70000 }},
		{"negative debounce", func(c *Config) { c.DebounceMs = -1 }},
		{"negative reconnect", func(c *Config) { c.ReconnectMs = -5 }},
		{"zero fetch timeout", func(c *Config) { c.FetchTimeoutMs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestIPv6Host(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "::1"
	if got := cfg.APIBaseURL(); got != "http://[::1]:4316" {
		t.Errorf("APIBaseURL = %q", got)
	}
}

func TestValidateAcceptsZeroDebounce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DebounceMs = 0
	cfg.ReconnectMs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero debounce and reconnect take defaults downstream: %v", err)
	}
}
