package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger provides structured logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	zl             zerolog.Logger
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// Options controls where log output goes
type Options struct {
	Level  string
	Format string // console or json
	File   string // empty means stderr
}

var (
	outputMu sync.RWMutex
	output   io.Writer = os.Stderr
	format             = "console"
)

// Setup redirects every logger created afterwards according to opts. The
// returned closer releases the log file, if one was opened.
func Setup(opts Options) (io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f
	}

	zerolog.SetGlobalLevel(parseLevel(opts.Level))
	SetOutput(w, opts.Format)
	return closer, nil
}

// SetOutput replaces the writer used by loggers created afterwards
func SetOutput(w io.Writer, outputFormat string) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
	if outputFormat != "" {
		format = strings.ToLower(outputFormat)
	}
}

// Discard silences loggers created afterwards
func Discard() {
	SetOutput(io.Discard, "json")
}

func newZerolog(component string) zerolog.Logger {
	outputMu.RLock()
	w, f := output, format
	outputMu.RUnlock()

	if f == "console" {
		_, isFile := w.(*os.File)
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05.000",
			NoColor:    isFile && w != os.Stderr,
		}
	}
	if component == "" {
		component = "main"
	}
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

// New creates a new logger instance
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		zl:             newZerolog(component),
	}
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		zl:             l.zl.With().Str("component", component).Logger(),
	}
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l != nil && l.verbose() {
		l.emit(l.zl.Debug(), msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l != nil && l.verbose() {
		l.emit(l.zl.Info(), msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l != nil {
		l.emit(l.zl.Warn(), msg, nil, args...)
	}
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	if l != nil {
		l.emit(l.zl.Error(), msg, nil, args...)
	}
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l != nil && l.verbose() {
		l.emit(l.zl.Debug(), msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l != nil && l.verbose() {
		l.emit(l.zl.Info(), msg, fields, args...)
	}
}

// WarnWithFields logs warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	if l != nil {
		l.emit(l.zl.Warn(), msg, fields, args...)
	}
}

// ErrorWithFields logs error message with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	if l != nil {
		l.emit(l.zl.Error(), msg, fields, args...)
	}
}

func (l *Logger) emit(event *zerolog.Event, msg string, fields []Field, args ...interface{}) {
	// nil when the level is disabled globally
	if event == nil {
		return
	}
	for _, field := range fields {
		if err, ok := field.Value.(error); ok {
			event.AnErr(field.Key, err)
			continue
		}
		event.Interface(field.Key, field.Value)
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	event.Msg(msg)
}

// parseLevel converts a level name into a zerolog level
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
