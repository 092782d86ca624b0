package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
)

// Config holds the complete application configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard"`
	Pipeline  PipelineConfig  `yaml:"pipeline" json:"pipeline"`
	Video     VideoConfig     `yaml:"video" json:"video"`
	Intake    IntakeConfig    `yaml:"intake" json:"intake"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
	Alerts    AlertsConfig    `yaml:"alerts" json:"alerts"`
	UI        UIConfig        `yaml:"ui" json:"ui"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
}

// DashboardConfig configures the initial state and the periodic tasks
type DashboardConfig struct {
	InitialView       string        `yaml:"initial_view" json:"initial_view" env:"CROWDGUARD_DASHBOARD_INITIAL_VIEW"`
	InitialLiveCount  int           `yaml:"initial_live_count" json:"initial_live_count" env:"CROWDGUARD_DASHBOARD_INITIAL_LIVE_COUNT"`
	ClampLiveCount    bool          `yaml:"clamp_live_count" json:"clamp_live_count" env:"CROWDGUARD_DASHBOARD_CLAMP_LIVE_COUNT"`
	ClockPeriod       time.Duration `yaml:"clock_period" json:"clock_period" env:"CROWDGUARD_DASHBOARD_CLOCK_PERIOD"`
	CameraClockPeriod time.Duration `yaml:"camera_clock_period" json:"camera_clock_period" env:"CROWDGUARD_DASHBOARD_CAMERA_CLOCK_PERIOD"`
	ScanPeriod        time.Duration `yaml:"scan_period" json:"scan_period" env:"CROWDGUARD_DASHBOARD_SCAN_PERIOD"`
	Seed              uint64        `yaml:"seed" json:"seed" env:"CROWDGUARD_DASHBOARD_SEED"` // 0 picks a random seed
}

// PipelineConfig configures the upload and analysis simulation
type PipelineConfig struct {
	UploadTick       time.Duration `yaml:"upload_tick" json:"upload_tick" env:"CROWDGUARD_PIPELINE_UPLOAD_TICK"`
	AnalysisDelay    time.Duration `yaml:"analysis_delay" json:"analysis_delay" env:"CROWDGUARD_PIPELINE_ANALYSIS_DELAY"`
	MaxIncrement     float64       `yaml:"max_increment" json:"max_increment" env:"CROWDGUARD_PIPELINE_MAX_INCREMENT"`
	EngineTimeout    time.Duration `yaml:"engine_timeout" json:"engine_timeout" env:"CROWDGUARD_PIPELINE_ENGINE_TIMEOUT"`
	Engine           string        `yaml:"engine" json:"engine" env:"CROWDGUARD_PIPELINE_ENGINE"`
	BreakerThreshold int           `yaml:"breaker_threshold" json:"breaker_threshold" env:"CROWDGUARD_PIPELINE_BREAKER_THRESHOLD"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown" json:"breaker_cooldown" env:"CROWDGUARD_PIPELINE_BREAKER_COOLDOWN"`
}

// VideoConfig configures camera stream connections
type VideoConfig struct {
	ConnectAttempts uint          `yaml:"connect_attempts" json:"connect_attempts" env:"CROWDGUARD_VIDEO_CONNECT_ATTEMPTS"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff" json:"connect_backoff" env:"CROWDGUARD_VIDEO_CONNECT_BACKOFF"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" json:"connect_timeout" env:"CROWDGUARD_VIDEO_CONNECT_TIMEOUT"`
}

// IntakeConfig configures the video drop folder
type IntakeConfig struct {
	DropDir      string        `yaml:"drop_dir" json:"drop_dir" env:"CROWDGUARD_INTAKE_DROP_DIR"`
	DropInterval time.Duration `yaml:"drop_interval" json:"drop_interval" env:"CROWDGUARD_INTAKE_DROP_INTERVAL"`
}

// TelemetryConfig configures live gate occupancy polling
type TelemetryConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" env:"CROWDGUARD_TELEMETRY_ENABLED"`
	Source   string        `yaml:"source" json:"source" env:"CROWDGUARD_TELEMETRY_SOURCE"` // static|jitter
	Interval time.Duration `yaml:"interval" json:"interval" env:"CROWDGUARD_TELEMETRY_INTERVAL"`
	Spread   int           `yaml:"spread" json:"spread" env:"CROWDGUARD_TELEMETRY_SPREAD"`
}

// AlertsConfig configures the external alert feed
type AlertsConfig struct {
	FeedFile string `yaml:"feed_file" json:"feed_file" env:"CROWDGUARD_ALERTS_FEED_FILE"`
}

// UIConfig configures the terminal presentation
type UIConfig struct {
	Theme   string `yaml:"theme" json:"theme" env:"CROWDGUARD_UI_THEME"` // default|high-contrast|minimal
	NoEmoji bool   `yaml:"no_emoji" json:"no_emoji" env:"CROWDGUARD_UI_NO_EMOJI"`
	NoColor bool   `yaml:"no_color" json:"no_color" env:"CROWDGUARD_UI_NO_COLOR"`
}

// LoggingConfig configures the log file
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" env:"CROWDGUARD_LOG_LEVEL"`
	Format string `yaml:"format" json:"format" env:"CROWDGUARD_LOG_FORMAT"` // console|json
	File   string `yaml:"file" json:"file" env:"CROWDGUARD_LOG_FILE"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Dashboard: DashboardConfig{
			InitialView:       common.ViewDashboard.String(),
			InitialLiveCount:  4281,
			ClampLiveCount:    true,
			ClockPeriod:       2 * time.Second,
			CameraClockPeriod: 1 * time.Second,
			ScanPeriod:        80 * time.Millisecond,
		},
		Pipeline: PipelineConfig{
			UploadTick:       200 * time.Millisecond,
			AnalysisDelay:    5 * time.Second,
			MaxIncrement:     15,
			EngineTimeout:    30 * time.Second,
			Engine:           "simulated",
			BreakerThreshold: 3,
			BreakerCooldown:  30 * time.Second,
		},
		Video: VideoConfig{
			ConnectAttempts: 3,
			ConnectBackoff:  250 * time.Millisecond,
			ConnectTimeout:  10 * time.Second,
		},
		Intake: IntakeConfig{
			DropInterval: 1 * time.Second,
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Source:   "static",
			Interval: 5 * time.Second,
			Spread:   10,
		},
		UI: UIConfig{
			Theme: "default",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "~/.cache/crowdguard/crowdguard.log",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateDashboardConfig,
		c.validatePipelineConfig,
		c.validateVideoConfig,
		c.validateTelemetryConfig,
		c.validateUIConfig,
		c.validateLoggingConfig,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateDashboardConfig validates the dashboard section
func (c *Config) validateDashboardConfig() error {
	if _, err := common.ParseViewID(c.Dashboard.InitialView); err != nil {
		return fmt.Errorf("invalid initial_view: %w", err)
	}
	if c.Dashboard.InitialLiveCount < 0 {
		return fmt.Errorf("initial_live_count must be non-negative")
	}
	periods := map[string]time.Duration{
		"clock_period":        c.Dashboard.ClockPeriod,
		"camera_clock_period": c.Dashboard.CameraClockPeriod,
		"scan_period":         c.Dashboard.ScanPeriod,
	}
	for name, d := range periods {
		if d <= 0 {
			return fmt.Errorf("%s must be greater than 0", name)
		}
	}
	return nil
}

// validatePipelineConfig validates the pipeline section
func (c *Config) validatePipelineConfig() error {
	if c.Pipeline.UploadTick <= 0 {
		return fmt.Errorf("upload_tick must be greater than 0")
	}
	if c.Pipeline.AnalysisDelay < 0 {
		return fmt.Errorf("analysis_delay must be non-negative")
	}
	if c.Pipeline.MaxIncrement <= 0 || c.Pipeline.MaxIncrement > 100 {
		return fmt.Errorf("max_increment must be in (0, 100]")
	}
	if c.Pipeline.EngineTimeout < 0 {
		return fmt.Errorf("engine_timeout must be non-negative")
	}
	if c.Pipeline.Engine == "" {
		return fmt.Errorf("pipeline engine is required")
	}
	if c.Pipeline.BreakerThreshold < 0 {
		return fmt.Errorf("breaker_threshold must be non-negative")
	}
	return nil
}

// validateVideoConfig validates the video section
func (c *Config) validateVideoConfig() error {
	if c.Video.ConnectAttempts < 1 {
		return fmt.Errorf("connect_attempts must be greater than 0")
	}
	if c.Video.ConnectBackoff < 0 || c.Video.ConnectTimeout < 0 {
		return fmt.Errorf("video timings must be non-negative")
	}
	return nil
}

// validateTelemetryConfig validates the telemetry section
func (c *Config) validateTelemetryConfig() error {
	if !slices.Contains([]string{"static", "jitter"}, c.Telemetry.Source) {
		return fmt.Errorf("invalid telemetry source: %s (must be one of: static, jitter)", c.Telemetry.Source)
	}
	if c.Telemetry.Enabled && c.Telemetry.Interval <= 0 {
		return fmt.Errorf("telemetry interval must be greater than 0")
	}
	return nil
}

// validateUIConfig validates the ui section
func (c *Config) validateUIConfig() error {
	validThemes := map[string]bool{
		"default":       true,
		"high-contrast": true,
		"minimal":       true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
	}
	return nil
}

// validateLoggingConfig validates the logging section
func (c *Config) validateLoggingConfig() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be one of: console, json)", c.Logging.Format)
	}
	return nil
}

// InitialView returns the parsed initial view
func (c *Config) InitialView() common.ViewID {
	v, err := common.ParseViewID(c.Dashboard.InitialView)
	if err != nil {
		return common.ViewDashboard
	}
	return v
}
