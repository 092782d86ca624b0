package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/config"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/ui"
)

// execute runs the root command with args and returns everything written
// to stdout and stderr
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		globalConfig = nil
		emoji.SetEmojiDisabled(false)
		ui.SetColorDisabled(false)
	})

	cmd := NewRootCommand("1.2.3", "abc123", "2024-03-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crowdguard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "--config", writeConfig(t, "version: \"1.0\"\n"), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "CrowdGuard 1.2.3 (abc123) built on 2024-03-01") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestSnapshotJSON(t *testing.T) {
	cfg := writeConfig(t, "dashboard:\n  seed: 7\n")
	out, err := execute(t, "--config", cfg, "--no-emoji", "snapshot", "-o", "json", "--view", "alerts")
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Summary struct {
			View      string `json:"view"`
			LiveCount int    `json:"live_count"`
		} `json:"summary"`
		Alerts []json.RawMessage `json:"alerts"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Summary.View != "alerts" || doc.Summary.LiveCount != 4281 {
		t.Errorf("summary = %+v", doc.Summary)
	}
	if len(doc.Alerts) == 0 {
		t.Error("snapshot carries no alerts")
	}
}

func TestSnapshotErrors(t *testing.T) {
	cfg := writeConfig(t, "version: \"1.0\"\n")
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"snapshot", "-o", "xml"}},
		{"unknown view", []string{"snapshot", "--view", "lobby"}},
		{"extra args", []string{"snapshot", "now"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, append([]string{"--config", cfg}, tt.args...)...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSnapshotOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reports", "snap.md")
	_, err := execute(t, "--config", writeConfig(t, "version: \"1.0\"\n"), "snapshot", "-o", "markdown", "--output-file", target)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# CrowdGuardAI Snapshot") {
		t.Errorf("unexpected file content: %.80q", data)
	}
}

func TestConfigInitThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "crowdguard.yaml")

	out, err := execute(t, "--config", writeConfig(t, "version: \"1.0\"\n"), "--no-emoji", "config", "init", "--output", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Configuration file created at: "+path) {
		t.Errorf("init output = %q", out)
	}

	if _, err := execute(t, "--config", writeConfig(t, "version: \"1.0\"\n"), "config", "init", "--output", path); err == nil {
		t.Error("init overwrote an existing file without --force")
	}

	out, err = execute(t, "--config", path, "config", "validate")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Configuration is valid", "Initial View: Dashboard", "Engine: simulated"} {
		if !strings.Contains(out, want) {
			t.Errorf("validate output missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidConfigFails(t *testing.T) {
	cfg := writeConfig(t, "dashboard:\n  initial_view: lobby\n")
	if _, err := execute(t, "--config", cfg, "config", "validate"); err == nil {
		t.Error("expected validation error")
	}
}

func TestConfigShowJSON(t *testing.T) {
	out, err := execute(t, "--config", writeConfig(t, "pipeline:\n  max_increment: 9\n"), "config", "show", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}

	var cfg config.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if cfg.Pipeline.MaxIncrement != 9 || cfg.Pipeline.Engine != "simulated" {
		t.Errorf("pipeline = %+v", cfg.Pipeline)
	}
}

func TestEnginesMarksActive(t *testing.T) {
	out, err := execute(t, "--config", writeConfig(t, "version: \"1.0\"\n"), "engines")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "* simulated") {
		t.Errorf("engines output = %q", out)
	}
}

func TestApplyPresentation(t *testing.T) {
	t.Cleanup(func() {
		emoji.SetEmojiDisabled(false)
		ui.SetColorDisabled(false)
	})

	cmd := NewRootCommand("dev", "none", "unknown")
	cfg := config.DefaultConfig()
	cfg.UI.NoColor = true
	cfg.UI.Theme = "no-such-theme"

	if err := cmd.ParseFlags([]string{"--no-emoji"}); err != nil {
		t.Fatal(err)
	}
	applyPresentation(cmd, cfg)

	if !emoji.IsEmojiDisabled() {
		t.Error("--no-emoji flag ignored")
	}
	if !ui.IsColorDisabled() {
		t.Error("ui.no_color ignored")
	}
}

func TestBuildDashboard(t *testing.T) {
	feedFile := filepath.Join(t.TempDir(), "sensors.log")
	if err := os.WriteFile(feedFile, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Dashboard.Seed = 42
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Interval = 10 * time.Millisecond
	cfg.Alerts.FeedFile = feedFile
	cfg.Intake.DropDir = t.TempDir()

	d, err := buildDashboard(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if d.deps.State == nil || d.deps.Timers == nil || d.deps.Pipeline == nil || d.deps.Streams == nil {
		t.Errorf("core deps missing: %+v", d.deps)
	}
	if d.deps.Snapshots == nil || d.deps.Intake == nil || len(d.deps.Feeds) != 1 {
		t.Errorf("optional sources not wired: snapshots=%v intake=%v feeds=%d", d.deps.Snapshots != nil, d.deps.Intake != nil, len(d.deps.Feeds))
	}
	if d.uiConfig.ScanPeriod != 80*time.Millisecond {
		t.Errorf("scan period = %v", d.uiConfig.ScanPeriod)
	}

	if err := d.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestBuildDashboardFailures(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"unknown engine", func(c *config.Config) { c.Pipeline.Engine = "oracle" }},
		{"missing feed file", func(c *config.Config) { c.Alerts.FeedFile = "/does/not/exist.log" }},
		{"missing drop dir", func(c *config.Config) { c.Intake.DropDir = "/does/not/exist" }},
		{"unknown telemetry source", func(c *config.Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Source = "satellite"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.modify(cfg)
			if _, err := buildDashboard(context.Background(), cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTailFeed(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	t.Cleanup(func() { emoji.SetEmojiDisabled(false) })

	var out bytes.Buffer
	if err := tailFeed(context.Background(), alerts.NewFixtureFeed(), &out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(out.String(), "[!!]") || !strings.Contains(out.String(), "[WRN]") {
		t.Errorf("missing level markers:\n%s", out.String())
	}
}

func TestTailFeedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := tailFeed(ctx, alerts.NewFixtureFeed(), &out); err != nil {
		t.Errorf("err = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("printed after cancel: %q", out.String())
	}
}
