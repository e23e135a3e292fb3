// Package logging provides structured logging configuration for wretchkit.
//
// This package wraps log/slog so the mock server, the changelog generator and
// the CLI all log the same way. It supports configurable log levels and
// output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("mock server listening", "addr", "127.0.0.1:9876")
//	logger.Error("failed to load templates", "error", err)
//
// # Output Formats
//
//   - Text: human-readable format for development
//   - JSON: structured format for CI log collectors
//   - Auto: text on a terminal, JSON otherwise
//
// # Integration
//
// Components accept a *slog.Logger through a WithLogger option.
// If no logger is provided they fall back to logging.Nop().
package logging
