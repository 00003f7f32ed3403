// Package logger builds the application's charmbracelet/log logger with a
// rotating log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Debug  bool
	File   string    // Log file path; empty disables file output
	Stderr io.Writer // Optional console output, nil for file-only
	Prefix string
}

// Logger pairs a logger with the rotating file behind it.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger. With neither File nor Stderr set, output is discarded.
// The TUI must not pass Stderr: the terminal belongs to the renderer.
func New(cfg Config) (*Logger, error) {
	var writers []io.Writer
	var file *lumberjack.Logger

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logger: failed to create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		writers = append(writers, file)
	}
	if cfg.Stderr != nil {
		writers = append(writers, cfg.Stderr)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "temporal"
	}

	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	})

	return &Logger{Logger: l, file: file}, nil
}

// Discard returns a logger that writes nowhere.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// DefaultFile returns the log file under dir, or empty if dir is empty.
func DefaultFile(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "logs", "temporal.log")
}
