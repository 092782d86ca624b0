package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/emoji"
)

func newAlertsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Work with alert feeds",
	}
	cmd.AddCommand(newAlertsTailCommand())
	return cmd
}

func newAlertsTailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tail [file]",
		Short: "Print alerts as they are appended to a log file",
		Long: `Follow a log file and print every warning or error line as an alert.

Uses file system notifications to detect changes. Lines already in the
file are skipped. Press Ctrl+C to stop.

Examples:
  crowdguard alerts tail /var/log/venue/sensors.log`,
		Args: cobra.ExactArgs(1),
		RunE: runAlertsTail,
	}
}

func runAlertsTail(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filename)
	}

	feed, err := alerts.OpenLogFeed(filename, newLogger("alerts"))
	if err != nil {
		return err
	}
	defer func() { _ = feed.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching file: %s\nPress Ctrl+C to stop...\n\n", filename)
	}
	return tailFeed(ctx, feed, cmd.OutOrStdout())
}

// tailFeed prints alerts from feed until ctx ends or the feed is exhausted
func tailFeed(ctx context.Context, feed alerts.Feed, out io.Writer) error {
	for {
		batch, err := feed.Next(ctx)
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			return err
		}
		for _, a := range batch {
			fmt.Fprintf(out, "[%s] %s %s\n", a.Timestamp, alertSymbol(a.Level), a.Message)
		}
	}
}

func alertSymbol(level common.AlertLevel) string {
	switch level {
	case common.AlertDanger:
		return emoji.GetEmoji("danger")
	case common.AlertWarning:
		return emoji.GetEmoji("warning")
	default:
		return emoji.GetEmoji("info")
	}
}
