package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/config"
	"github.com/yildizm/CrowdGuard/internal/formatter"
	"github.com/yildizm/CrowdGuard/internal/state"
	"github.com/yildizm/CrowdGuard/internal/ui"
)

var (
	snapshotView       string
	snapshotOutput     string
	snapshotOutputFile string
	snapshotTimeout    time.Duration
)

func newSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the dashboard state without starting the TUI",
		Long: `Render the initial dashboard state (gates, guards, alerts and the crowd
trend) as text, JSON, markdown, CSV, or as a review prompt for a
language model.

Examples:
  crowdguard snapshot
  crowdguard snapshot --output json
  crowdguard snapshot --view alerts --output markdown --output-file report.md`,
		Args: cobra.NoArgs,
		RunE: runSnapshot,
	}

	cmd.Flags().StringVar(&snapshotView, "view", "", "view recorded in the snapshot")
	cmd.Flags().StringVarP(&snapshotOutput, "output", "o", "text", "output format ("+strings.Join(formatter.Formats, ", ")+")")
	cmd.Flags().StringVar(&snapshotOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().DurationVar(&snapshotTimeout, "timeout", 10*time.Second, "time allowed for reading alert feeds")

	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	view := cfg.InitialView()
	if snapshotView != "" {
		v, err := common.ParseViewID(snapshotView)
		if err != nil {
			return err
		}
		view = v
	}

	f, err := formatter.New(snapshotOutput, !ui.IsColorDisabled())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), snapshotTimeout)
	defer cancel()

	snap, err := collectSnapshot(ctx, cfg, view)
	if err != nil {
		return err
	}

	out, err := f.Format(snap)
	if err != nil {
		return fmt.Errorf("failed to format snapshot: %w", err)
	}
	return writeOutput(cmd, out)
}

// collectSnapshot builds the initial state for cfg and reads the fixture
// alert history into it
func collectSnapshot(ctx context.Context, cfg *config.Config, view common.ViewID) (*formatter.Snapshot, error) {
	st := state.New(state.Options{
		InitialView:      view,
		InitialLiveCount: cfg.Dashboard.InitialLiveCount,
		ClampLiveCount:   cfg.Dashboard.ClampLiveCount,
		Random:           common.NewRandomSource(cfg.Dashboard.Seed),
	})

	feed := alerts.NewFixtureFeed()
	defer func() { _ = feed.Close() }()

	return formatter.Collect(ctx, st, feed)
}

func writeOutput(cmd *cobra.Command, out []byte) error {
	if snapshotOutputFile == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}

	dir := filepath.Dir(snapshotOutputFile)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(snapshotOutputFile, out, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Snapshot written to %s\n", snapshotOutputFile)
	return nil
}
