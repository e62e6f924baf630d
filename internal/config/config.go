// Package config holds the stage display settings. Values are read once at
// startup and never change while the display runs.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config is the persistent application configuration
type Config struct {
	// Controller connection
	Host    string `json:"host"`
	APIPort int    `json:"api_port"`
	WSPort  int    `json:"ws_port"`

	// Composition toggles
	Dedup   bool `json:"dedup"`
	Pairing bool `json:"pairing"`

	// Timing
	DebounceMs     int `json:"debounce_ms"`
	FetchTimeoutMs int `json:"fetch_timeout_ms"`
	ReconnectMs    int `json:"reconnect_ms"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Fullscreen bool `json:"fullscreen"` // start in the alternate screen
	ShowStatus bool `json:"show_status"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Host:           "localhost",
		APIPort:        4316,
		WSPort:         4317,
		Dedup:          true,
		Pairing:        true,
		DebounceMs:     100,
		FetchTimeoutMs: 5000,
		ReconnectMs:    2000,
		UI: UIConfig{
			Fullscreen: true,
			ShowStatus: true,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".stageview", "config.json")
}

// Load reads config from disk, or returns defaults. Environment overrides
// are applied in both cases.
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads config from path. Fields missing from the file keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.AutoPopulateFromEnv()
	return cfg, cfg.Validate()
}

// Save writes config to disk
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes config to path, creating the directory if needed.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AutoPopulateFromEnv applies STAGEVIEW_* environment overrides.
// Unparseable booleans are ignored.
func (c *Config) AutoPopulateFromEnv() {
	if host := os.Getenv("STAGEVIEW_HOST"); host != "" {
		c.Host = host
	}
	if v, ok := envBool("STAGEVIEW_DEDUP"); ok {
		c.Dedup = v
	}
	if v, ok := envBool("STAGEVIEW_PAIRING"); ok {
		c.Pairing = v
	}
}

func envBool(key string) (bool, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate reports settings the display cannot run with.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: host is empty")
	}
	for name, port := range map[string]int{"api_port": c.APIPort, "ws_port": c.WSPort} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("config: %s %d out of range", name, port)
		}
	}
	if c.DebounceMs < 0 || c.ReconnectMs < 0 {
		return fmt.Errorf("config: durations must not be negative")
	}
	if c.FetchTimeoutMs <= 0 {
		return fmt.Errorf("config: fetch_timeout_ms must be positive, got %d", c.FetchTimeoutMs)
	}
	return nil
}

// APIBaseURL is the base URL of the controller HTTP API.
func (c *Config) APIBaseURL() string {
	return "http://" + net.JoinHostPort(c.Host, strconv.Itoa(c.APIPort))
}

// WebSocketURL is the push channel URL.
func (c *Config) WebSocketURL() string {
	return "ws://" + net.JoinHostPort(c.Host, strconv.Itoa(c.WSPort)) + "/api/ws"
}

// Debounce returns the debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// FetchTimeout returns the per-fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// Reconnect returns the websocket redial delay.
func (c *Config) Reconnect() time.Duration {
	return time.Duration(c.ReconnectMs) * time.Millisecond
}
