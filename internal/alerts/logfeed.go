package alerts

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/logger"
	"github.com/yildizm/go-logparser"
)

// LineParser parses a batch of log lines
type LineParser interface {
	ParseString(content string) ([]logparser.LogEntry, error)
}

// LogFeed tails a log file and turns new lines into alerts
type LogFeed struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	watcher *fsnotify.Watcher
	parser  LineParser
	log     *logger.Logger
	now     func() time.Time
	partial string
}

// OpenLogFeed starts tailing path from its current end
func OpenLogFeed(path string, log *logger.Logger) (*LogFeed, error) {
	return openLogFeed(path, logparser.New(), log)
}

func openLogFeed(path string, parser LineParser, log *logger.Logger) (*LogFeed, error) {
	if err := validateFeedPath(path); err != nil {
		return nil, fmt.Errorf("invalid alert feed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	// #nosec G304 - path is validated above
	file, err := os.Open(path)
	if err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		_ = file.Close()
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to seek to end of file: %w", err)
	}

	return &LogFeed{
		path:    path,
		file:    file,
		reader:  bufio.NewReader(file),
		watcher: watcher,
		parser:  parser,
		log:     log,
		now:     time.Now,
	}, nil
}

// Name returns the tailed path
func (f *LogFeed) Name() string { return "log:" + filepath.Base(f.path) }

// Next waits for lines appended to the file
func (f *LogFeed) Next(ctx context.Context) ([]common.Alert, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case event, ok := <-f.watcher.Events:
			if !ok {
				return nil, io.EOF
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			alerts, err := f.readNew()
			if err != nil {
				return nil, err
			}
			if len(alerts) > 0 {
				return alerts, nil
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil, io.EOF
			}
			f.log.Warn("alert feed watcher error: %v", err)
		}
	}
}

// readNew consumes complete lines written since the last read. A trailing
// line without a newline is kept until it is completed.
func (f *LogFeed) readNew() ([]common.Alert, error) {
	var lines []string
	for {
		chunk, err := f.reader.ReadString('\n')
		if err == io.EOF {
			f.partial += chunk
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read alert feed: %w", err)
		}
		line := strings.TrimRight(f.partial+chunk, "\r\n")
		f.partial = ""
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}

	entries, err := f.parser.ParseString(strings.Join(lines, "\n"))
	if err != nil {
		f.log.Debug("failed to parse %d alert lines: %v", len(lines), err)
		return nil, nil
	}
	return FromEntries(entries, f.now()), nil
}

// Close stops watching and closes the file
func (f *LogFeed) Close() error {
	werr := f.watcher.Close()
	ferr := f.file.Close()
	if werr != nil {
		return werr
	}
	return ferr
}

func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}

func validateFeedPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}
	return nil
}
