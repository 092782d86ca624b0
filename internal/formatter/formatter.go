package formatter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/CrowdGuard/internal/state"
)

// Formatter defines the interface for snapshot output formatting
type Formatter interface {
	Format(snapshot *Snapshot) ([]byte, error)
}

// Snapshot is a point-in-time copy of the dashboard state
type Snapshot struct {
	GeneratedAt time.Time
	View        common.ViewID
	LiveCount   int
	Emergency   bool
	Gates       []common.Gate
	Guards      []common.Guard
	Alerts      []common.Alert
	Trend       []fixtures.TrendPoint
	Priority    []fixtures.PriorityShare
}

// Collect copies st and drains every feed into the alert list, after the
// alerts the state already holds
func Collect(ctx context.Context, st *state.AppState, feeds ...alerts.Feed) (*Snapshot, error) {
	snap := &Snapshot{
		GeneratedAt: st.DisplayedTime(),
		View:        st.ActiveView(),
		LiveCount:   st.LiveCount(),
		Emergency:   st.Emergency(),
		Gates:       st.Gates(),
		Guards:      st.Guards(),
		Alerts:      st.FeedAlerts(),
		Trend:       st.Trend(),
		Priority:    fixtures.PriorityShares(),
	}

	for _, feed := range feeds {
		for {
			batch, err := feed.Next(ctx)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read alert feed %s: %w", feed.Name(), err)
			}
			snap.Alerts = append(snap.Alerts, batch...)
		}
	}
	return snap, nil
}

// AlertCounts tallies the alerts by level
func (s *Snapshot) AlertCounts() map[common.AlertLevel]int {
	return lo.CountValuesBy(s.Alerts, func(a common.Alert) common.AlertLevel { return a.Level })
}

// PeakHour returns the trend sample with the highest total
func (s *Snapshot) PeakHour() (fixtures.TrendPoint, bool) {
	if len(s.Trend) == 0 {
		return fixtures.TrendPoint{}, false
	}
	return lo.MaxBy(s.Trend, func(a, b fixtures.TrendPoint) bool { return a.Total > b.Total }), true
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "markdown", "csv", "prompt"}

// New returns the formatter for format
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text", "terminal", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	case "prompt":
		return NewPrompt(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}
