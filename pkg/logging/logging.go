// Package logging configures structured logging with tint for the CRM store.
//
// Libraries receive a *slog.Logger through their constructors; binaries can
// additionally install the logger as the process default with Setup.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a colored structured logger at the level specified by the
// LOG_LEVEL env var (default: INFO).
func New() *slog.Logger {
	return NewWithLevel(levelFromEnv())
}

// NewWithLevel returns a colored structured logger at the given level.
func NewWithLevel(level slog.Level) *slog.Logger {
	return slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	)
}

// Setup installs the env-configured logger as the process default.
func Setup() {
	slog.SetDefault(New())
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
