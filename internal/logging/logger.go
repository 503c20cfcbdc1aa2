// Package logging formats slog records as
// [LEVEL] [HH:MM:SS] message key=value
// with colors when writing to a terminal.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/cleared-dev/stmtimport/internal/config"
)

// ParseLevel maps a config level name to a slog.Level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New creates a logger writing to w at the configured level.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}))
}
