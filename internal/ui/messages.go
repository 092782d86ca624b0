package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/CrowdGuard/internal/alerts"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/telemetry"
	"github.com/yildizm/CrowdGuard/internal/video"
)

// Message types delivered to the dashboard model
type snapshotMsg struct {
	snapshot telemetry.Snapshot
}

type feedAlertsMsg struct {
	feed   alerts.Feed
	alerts []common.Alert
}

type feedClosedMsg struct {
	feed alerts.Feed
	err  error // nil when the feed ended normally
}

type videoDroppedMsg struct {
	video common.VideoHandle
}

type intakeClosedMsg struct {
	err error
}

type streamResultMsg struct {
	url    string
	handle *video.StreamHandle
	err    error
}

// VideoIntake yields videos selected outside the TUI, e.g. a drop folder
type VideoIntake interface {
	Next(ctx context.Context) (common.VideoHandle, error)
}

// waitForSnapshot delivers the next telemetry snapshot
func waitForSnapshot(ch <-chan telemetry.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg{snapshot: snap}
	}
}

// readFeed delivers the next batch of alerts from feed
func readFeed(ctx context.Context, feed alerts.Feed) tea.Cmd {
	return func() tea.Msg {
		batch, err := feed.Next(ctx)
		if err != nil {
			return feedClosedMsg{feed: feed, err: err}
		}
		return feedAlertsMsg{feed: feed, alerts: batch}
	}
}

// waitForVideo delivers the next video from intake
func waitForVideo(ctx context.Context, intake VideoIntake) tea.Cmd {
	if intake == nil {
		return nil
	}
	return func() tea.Msg {
		v, err := intake.Next(ctx)
		if err != nil {
			return intakeClosedMsg{err: err}
		}
		return videoDroppedMsg{video: v}
	}
}

// connectStream connects to a camera stream off the update loop
func connectStream(ctx context.Context, source video.Source, url string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		handle, err := source.Connect(ctx, url)
		return streamResultMsg{url: url, handle: handle, err: err}
	}
}
