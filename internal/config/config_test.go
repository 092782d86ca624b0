package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}
	if cfg.Dashboard.InitialLiveCount != 4281 {
		t.Errorf("Expected initial live count 4281, got %d", cfg.Dashboard.InitialLiveCount)
	}
	if !cfg.Dashboard.ClampLiveCount {
		t.Error("Expected live count to be clamped by default")
	}
	if cfg.Pipeline.AnalysisDelay != 5*time.Second {
		t.Errorf("Expected analysis delay 5s, got %v", cfg.Pipeline.AnalysisDelay)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Expected telemetry to be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
	if cfg.InitialView() != common.ViewDashboard {
		t.Errorf("Expected dashboard initial view, got %s", cfg.InitialView())
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"valid initial view", func(c *Config) { c.Dashboard.InitialView = "Demo" }, false},
		{"unknown initial view", func(c *Config) { c.Dashboard.InitialView = "lobby" }, true},
		{"negative live count", func(c *Config) { c.Dashboard.InitialLiveCount = -1 }, true},
		{"zero clock period", func(c *Config) { c.Dashboard.ClockPeriod = 0 }, true},
		{"zero scan period", func(c *Config) { c.Dashboard.ScanPeriod = 0 }, true},
		{"zero upload tick", func(c *Config) { c.Pipeline.UploadTick = 0 }, true},
		{"increment too large", func(c *Config) { c.Pipeline.MaxIncrement = 150 }, true},
		{"missing engine", func(c *Config) { c.Pipeline.Engine = "" }, true},
		{"breaker disabled", func(c *Config) { c.Pipeline.BreakerThreshold = 0 }, false},
		{"zero connect attempts", func(c *Config) { c.Video.ConnectAttempts = 0 }, true},
		{"unknown telemetry source", func(c *Config) { c.Telemetry.Source = "mqtt" }, true},
		{"enabled telemetry without interval", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Interval = 0
		}, true},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, true},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~/.config/crowdguard", filepath.Join(home, ".config/crowdguard")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if result := expandPath(tt.input); result != tt.expected {
			t.Errorf("expandPath(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(paths))
	}
	for _, path := range paths {
		if len(path) > 0 && path[0] == '~' {
			t.Errorf("Path %s was not expanded", path)
		}
	}
}
