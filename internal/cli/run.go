package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/analysis"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/config"
	"github.com/yildizm/CrowdGuard/internal/logger"
	"github.com/yildizm/CrowdGuard/internal/pipeline"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/telemetry"
	"github.com/yildizm/CrowdGuard/internal/timers"
	"github.com/yildizm/CrowdGuard/internal/ui"
	"github.com/yildizm/CrowdGuard/internal/video"
	"github.com/yildizm/CrowdGuard/internal/watch"
)

var runView string

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the dashboard",
		Long: `Start the interactive crowd safety dashboard.

Optional sources are enabled from the configuration file:
  telemetry.enabled   poll gate occupancy
  alerts.feed_file    follow a log file for new alerts
  intake.drop_dir     analyse videos copied into a folder

Examples:
  crowdguard run
  crowdguard run --view cameras
  crowdguard --config ./event.yaml`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	cmd.Flags().StringVar(&runView, "view", "", "initial view (dashboard, cameras, priority, security, guards, alerts, emergency, demo)")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	if runView != "" {
		cfg.Dashboard.InitialView = runView
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	closer, err := logger.Setup(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	log := newLogger("cli")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	d, err := buildDashboard(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Warn("shutdown: %v", err)
		}
	}()

	log.InfoWithFields("dashboard starting", []logger.Field{
		logger.F("view", cfg.InitialView().String()),
		logger.F("engine", cfg.Pipeline.Engine),
		logger.Count(len(d.deps.Feeds)),
	})
	err = ui.Run(d.uiConfig, d.deps)

	stats := d.deps.Pipeline.Stats()
	log.InfoWithFields("dashboard stopped", []logger.Field{
		logger.F("runs_completed", stats[pipeline.StatCompleted]),
		logger.F("runs_failed", stats[pipeline.StatFailed]),
		logger.Duration(d.deps.Pipeline.Durations().Avg()),
	})
	return err
}

// dashboard holds the wired collaborators of one TUI session
type dashboard struct {
	uiConfig  ui.Config
	deps      ui.Deps
	collector *telemetry.Collector
	closers   []io.Closer
}

// buildDashboard wires state, timers, pipeline and the optional external
// sources from cfg. Sources are started but the TUI is not.
func buildDashboard(ctx context.Context, cfg *config.Config) (*dashboard, error) {
	rng := common.NewRandomSource(cfg.Dashboard.Seed)

	st := state.New(state.Options{
		InitialView:      cfg.InitialView(),
		InitialLiveCount: cfg.Dashboard.InitialLiveCount,
		ClampLiveCount:   cfg.Dashboard.ClampLiveCount,
		Random:           rng,
	})

	engine, err := analysis.DefaultRegistry().Build(cfg.Pipeline.Engine, analysis.Options{
		Seed:             cfg.Dashboard.Seed,
		BreakerThreshold: cfg.Pipeline.BreakerThreshold,
		BreakerCooldown:  cfg.Pipeline.BreakerCooldown,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis engine: %w", err)
	}

	reg := timers.NewRegistry()
	machine := pipeline.New(reg, engine, rng, pipeline.Config{
		UploadTick:    cfg.Pipeline.UploadTick,
		AnalysisDelay: cfg.Pipeline.AnalysisDelay,
		MaxIncrement:  cfg.Pipeline.MaxIncrement,
		EngineTimeout: cfg.Pipeline.EngineTimeout,
	},
		pipeline.WithLogger(newLogger("pipeline")),
		pipeline.WithMutationCounter(st.Mutations()),
	)

	d := &dashboard{
		uiConfig: ui.Config{
			ClockPeriod:       cfg.Dashboard.ClockPeriod,
			CameraClockPeriod: cfg.Dashboard.CameraClockPeriod,
			ScanPeriod:        cfg.Dashboard.ScanPeriod,
			ConnectTimeout:    cfg.Video.ConnectTimeout,
		},
		deps: ui.Deps{
			State:    st,
			Timers:   reg,
			Pipeline: machine,
			Random:   rng,
			Streams: video.NewRetryingSource(video.NewStubSource(),
				cfg.Video.ConnectAttempts, cfg.Video.ConnectBackoff, newLogger("video")),
			Logger: newLogger("ui"),
		},
	}

	if err := d.startSources(ctx, cfg); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

func (d *dashboard) startSources(ctx context.Context, cfg *config.Config) error {
	if cfg.Telemetry.Enabled {
		// the collector polls on its own goroutine, so it gets its own source
		source, err := telemetry.NewSource(cfg.Telemetry.Source, common.NewRandomSource(cfg.Dashboard.Seed+1), cfg.Telemetry.Spread)
		if err != nil {
			return err
		}
		d.collector = telemetry.NewCollector(source, cfg.Telemetry.Interval, newLogger("telemetry"))
		if err := d.collector.Start(ctx); err != nil {
			return fmt.Errorf("failed to start telemetry: %w", err)
		}
		d.deps.Snapshots = d.collector.Snapshots()
	}

	if cfg.Alerts.FeedFile != "" {
		feed, err := alerts.OpenLogFeed(cfg.Alerts.FeedFile, newLogger("alerts"))
		if err != nil {
			return fmt.Errorf("failed to open alert feed: %w", err)
		}
		d.closers = append(d.closers, feed)
		d.deps.Feeds = append(d.deps.Feeds, feed)
	}

	if cfg.Intake.DropDir != "" {
		folder, err := watch.NewDropFolder(cfg.Intake.DropDir, cfg.Intake.DropInterval, newLogger("intake"))
		if err != nil {
			return err
		}
		d.closers = append(d.closers, folder)
		d.deps.Intake = folder
	}
	return nil
}

// Close stops the collector and releases every opened source
func (d *dashboard) Close() error {
	var errs []error
	if d.collector != nil {
		errs = append(errs, d.collector.Stop())
	}
	for _, c := range d.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
