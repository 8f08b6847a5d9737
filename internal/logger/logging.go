// Package logger provides prefixed charmbracelet/log loggers.
// Everything goes to stderr: in server mode stdout carries the IPC stream.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New creates a new default charm log that respects the global log level.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter is New with a custom destination.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// ParseLevel maps a config level name to a log level, defaulting to warn.
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// Setup configures the package-level logger used across seedguard.
func Setup(level log.Level) {
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	log.SetReportTimestamp(level == log.DebugLevel)
}

// OutputFor returns where log lines go: stderr, the file, or both.
// With no file, console is ignored and stderr is always used.
func OutputFor(file io.Writer, console bool) io.Writer {
	switch {
	case file == nil:
		return os.Stderr
	case console:
		return io.MultiWriter(os.Stderr, file)
	default:
		return file
	}
}

// AttachFile appends the package-level log output to path as well as (or,
// with console false, instead of) stderr. The returned func closes the file.
func AttachFile(path string, console bool) (func() error, error) {
	if path == "" {
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(OutputFor(f, console))
	log.SetReportTimestamp(true)
	return func() error {
		log.SetOutput(os.Stderr)
		return f.Close()
	}, nil
}
