// Package logging provides ecscope's structured logger: log/slog writing to
// a rotated file, plus timing helpers for remote calls.
//
// The terminal belongs to the dashboard, so nothing is ever logged to
// stdout or stderr. Without a log file every call is a no-op.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger
type Logger struct {
	logger  *slog.Logger
	enabled bool
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
)

// Config holds configuration for logger initialization
type Config struct {
	// FilePath is the path to the log file (empty = no logging)
	FilePath   string
	Level      slog.Level
	Format     LogFormat
	MaxSizeMB  int
	MaxBackups int
}

var (
	current atomic.Pointer[Logger]
	noop    = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	mu     sync.Mutex
	writer *lumberjack.Logger
)

// Init replaces the global logger. An empty FilePath disables logging.
// Init may be called again; the previous log file is closed.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if err := closeWriter(); err != nil {
		return err
	}

	if cfg.FilePath == "" {
		current.Store(noop)
		return nil
	}

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = DefaultMaxSizeMB
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultMaxBackups
	}

	writer = &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	current.Store(&Logger{
		logger:  slog.New(handler).With("app", "ecscope"),
		enabled: true,
	})
	return nil
}

// Shutdown disables logging and closes the log file
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()

	current.Store(noop)
	return closeWriter()
}

func closeWriter() error {
	if writer == nil {
		return nil
	}
	err := writer.Close()
	writer = nil
	if err != nil {
		return fmt.Errorf("couldn't close log file: %w", err)
	}
	return nil
}

// Get returns the global logger, or a no-op logger before Init
func Get() *Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return noop
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// IsEnabled reports whether records are written anywhere
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// IsEnabled returns true if logging is enabled globally
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts a level name to slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (valid values: debug, info, warn, error)", level)
	}
}

// ParseFormat converts a format name to LogFormat
func ParseFormat(format string) (LogFormat, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q (valid values: text, json)", format)
	}
}
