// SPDX-License-Identifier: MIT

// Package logging builds the structured loggers used across stochgrid.
//
// Library packages never create loggers on their own: they accept an injected
// *slog.Logger and stay silent by default (Discard). Binaries construct one
// with New from a Config.
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, JSON: true})
//	logger.Info("tree built", "nodes", n)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is the minimum severity that is written.
type Level int

const (
	// LevelDebug traces every pass and worker decision.
	LevelDebug Level = iota
	// LevelInfo reports construction and pass summaries.
	LevelInfo
	// LevelWarn reports recoverable oddities.
	LevelWarn
	// LevelError reports failed operations.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR" or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel accepts level names case-insensitively; "" means LevelInfo.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "", "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logging: unknown level %q", name)
	}
}

// Config selects level, format and destination. The zero value writes Info+
// text records to stderr.
type Config struct {
	Level  Level
	JSON   bool
	Output io.Writer
	// Component, when set, is attached to every record.
	Component string
}

// New returns a logger for cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: cfg.Level.slog()}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, hopts)
	} else {
		h = slog.NewTextHandler(out, hopts)
	}
	logger := slog.New(h)
	if cfg.Component != "" {
		logger = logger.With("component", cfg.Component)
	}
	return logger
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
