package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/logger"
	"golang.org/x/time/rate"
)

// DropFolder reports regular files created in a directory. A file arriving
// faster than the configured rate is held until the rate allows it; only the
// newest held file is kept.
type DropFolder struct {
	dir     string
	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	log     *logger.Logger

	held  string
	retry *time.Timer
}

// NewDropFolder watches dir, accepting at most one file per interval
func NewDropFolder(dir string, interval time.Duration, log *logger.Logger) (*DropFolder, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access drop folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("drop folder %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch drop folder: %w", err)
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &DropFolder{
		dir:     dir,
		watcher: watcher,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}, nil
}

// Dir returns the watched directory
func (d *DropFolder) Dir() string { return d.dir }

// Next blocks until a new regular file appears in the folder or a held
// file becomes due
func (d *DropFolder) Next(ctx context.Context) (common.VideoHandle, error) {
	for {
		select {
		case <-ctx.Done():
			return common.VideoHandle{}, ctx.Err()

		case event, ok := <-d.watcher.Events:
			if !ok {
				return common.VideoHandle{}, io.EOF
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			video, warning, err := ResolveVideo(event.Name)
			if err != nil {
				// directories and files removed right after creation
				d.log.Debug("ignoring drop folder entry %s: %v", event.Name, err)
				continue
			}
			if !d.limiter.Allow() {
				d.hold(video)
				continue
			}
			d.clearHeld()
			return d.deliver(video, warning), nil

		case <-d.retryC():
			d.retry = nil
			if !d.limiter.Allow() {
				d.armRetry()
				continue
			}
			path := d.held
			d.held = ""
			video, warning, err := ResolveVideo(path)
			if err != nil {
				d.log.Debug("held drop folder entry %s is gone: %v", path, err)
				continue
			}
			return d.deliver(video, warning), nil

		case err, ok := <-d.watcher.Errors:
			if !ok {
				return common.VideoHandle{}, io.EOF
			}
			d.log.Warn("drop folder watcher error: %v", err)
		}
	}
}

func (d *DropFolder) deliver(video common.VideoHandle, warning string) common.VideoHandle {
	if warning != "" {
		d.log.Warn("%s", warning)
	}
	return video
}

// hold keeps video until the limiter allows another file
func (d *DropFolder) hold(video common.VideoHandle) {
	if d.held != "" {
		d.log.Info("dropping held %s: replaced by %s", filepath.Base(d.held), video.Name)
	} else {
		d.log.Info("holding %s: drop folder rate limit", video.Name)
	}
	d.held = video.Path
	if d.retry == nil {
		d.armRetry()
	}
}

func (d *DropFolder) armRetry() {
	r := d.limiter.Reserve()
	delay := r.Delay()
	r.Cancel()
	d.retry = time.NewTimer(delay)
}

func (d *DropFolder) clearHeld() {
	d.held = ""
	if d.retry != nil {
		d.retry.Stop()
		d.retry = nil
	}
}

func (d *DropFolder) retryC() <-chan time.Time {
	if d.retry == nil {
		return nil
	}
	return d.retry.C
}

// Close stops watching. A held file is discarded; Next returns io.EOF once
// the watcher has shut down.
func (d *DropFolder) Close() error {
	return d.watcher.Close()
}
