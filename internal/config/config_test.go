package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Missing file falls back to defaults.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.App.Port)
	}
	if cfg.Upstream.BaseURL == "" || cfg.Upstream.StationsPath != "/stations" {
		t.Errorf("unexpected upstream defaults: %+v", cfg.Upstream)
	}
	if !strings.Contains(cfg.Upstream.BookingPath, "%station-id%") {
		t.Errorf("default booking path missing placeholder: %s", cfg.Upstream.BookingPath)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `app:
  name: "station-bookings"
  environment: "test"
  port: 9090

upstream:
  base_url: "http://localhost:1234"
  stations_path: "/stations"
  booking_path: "/stations/%station-id%/bookings/%booking-id%"
  timeout_seconds: 3

refresh:
  interval: "*/5 * * * *"

limits:
  max_requests: 10
  window_seconds: 30
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 9090 || cfg.App.Environment != "test" {
		t.Errorf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Upstream.BaseURL != "http://localhost:1234" || cfg.Upstream.TimeoutSeconds != 3 {
		t.Errorf("unexpected upstream config: %+v", cfg.Upstream)
	}
	if cfg.Limits.MaxRequests != 10 || cfg.Limits.WindowSeconds != 30 {
		t.Errorf("unexpected limits: %+v", cfg.Limits)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("UPSTREAM_BASE_URL", "http://upstream.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 7777 {
		t.Errorf("port = %d, want 7777 from env", cfg.App.Port)
	}
	if cfg.Upstream.BaseURL != "http://upstream.test" {
		t.Errorf("base URL = %q, want env override", cfg.Upstream.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantIn string
	}{
		{"bad port", func(c *Config) { c.App.Port = -1 }, "port"},
		{"missing base url", func(c *Config) { c.Upstream.BaseURL = "" }, "base URL"},
		{"missing placeholders", func(c *Config) { c.Upstream.BookingPath = "/bookings" }, "placeholder"},
		{"bad timeout", func(c *Config) { c.Upstream.TimeoutSeconds = 0 }, "timeout"},
		{"bad cron", func(c *Config) { c.Refresh.Interval = "not a cron" }, "refresh interval"},
		{"negative limit", func(c *Config) { c.Limits.MaxRequests = -5 }, "max requests"},
		{"limit without window", func(c *Config) { c.Limits.MaxRequests = 5; c.Limits.WindowSeconds = 0 }, "window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not mention %q", err, tt.wantIn)
			}
		})
	}

	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}
