// Package logger configures the process-wide slog default.
package logger

import (
	"log/slog"
	"os"

	"github.com/alkime/author/internal/config"
)

// Setup configures structured JSON logging for the server based on config.
func Setup(cfg *config.Config) *slog.Logger {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level(cfg),
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// SetupCLI configures text logging to stderr for interactive commands, so
// log lines do not interleave with drafting output on stdout.
func SetupCLI(cfg *config.Config) *slog.Logger {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level(cfg),
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func level(cfg *config.Config) slog.Level {
	logLevel := slog.LevelInfo
	if cfg.Env == "development" && cfg.LogLevel == "" {
		logLevel = slog.LevelDebug
	}

	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	return logLevel
}
