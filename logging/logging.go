// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a level name to a slog level. Unknown names mean warn.
func ParseLevel(name string) slog.Level {
	if level, ok := levels[strings.ToLower(name)]; ok {
		return level
	}
	return slog.LevelWarn
}

// New returns a JSON logger writing to w at the named level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Setup installs the default logger. With an empty path it writes to
// fallback; otherwise it appends to the file, creating its directory. The
// returned close function releases the file.
func Setup(level, path string, fallback io.Writer) (*slog.Logger, func() error, error) {
	if path == "" {
		logger := New(fallback, level)
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := New(f, level)
	slog.SetDefault(logger)
	logger.Debug("logging initialized", "level", ParseLevel(level).String(), "log_file", path)
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
