package alerts

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/fixtures"
	"github.com/yildizm/go-logparser"
)

// Feed is a lazy sequence of alerts. Next blocks until at least one new
// alert is available and returns io.EOF once the feed is exhausted.
type Feed interface {
	Name() string
	Next(ctx context.Context) ([]common.Alert, error)
	Close() error
}

// FixtureFeed yields the incident history once
type FixtureFeed struct {
	mu   sync.Mutex
	done bool
}

// NewFixtureFeed creates a fixture feed
func NewFixtureFeed() *FixtureFeed { return &FixtureFeed{} }

// Name returns "fixtures"
func (f *FixtureFeed) Name() string { return "fixtures" }

// Next returns the fixture alerts on the first call and io.EOF afterwards
func (f *FixtureFeed) Next(ctx context.Context) ([]common.Alert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return nil, io.EOF
	}
	f.done = true
	return fixtures.Alerts(), nil
}

// Close does nothing
func (f *FixtureFeed) Close() error { return nil }

// LevelFor maps a log level name to an alert level
func LevelFor(level string) common.AlertLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ERROR", "FATAL", "CRITICAL", "PANIC":
		return common.AlertDanger
	case "WARN", "WARNING":
		return common.AlertWarning
	case "DEBUG", "TRACE":
		return common.AlertInfo
	default:
		return common.AlertSafe
	}
}

// FromEntries converts parsed log entries into alerts. Entries without a
// timestamp are stamped with now.
func FromEntries(entries []logparser.LogEntry, now time.Time) []common.Alert {
	out := make([]common.Alert, 0, len(entries))
	for _, entry := range entries {
		msg := strings.TrimSpace(entry.Message)
		if msg == "" {
			continue
		}
		ts := entry.Timestamp
		if ts.IsZero() {
			ts = now
		}
		out = append(out, common.Alert{
			Timestamp: ts.Format("15:04:05"),
			Message:   msg,
			Level:     LevelFor(entry.Level),
		})
	}
	return out
}
