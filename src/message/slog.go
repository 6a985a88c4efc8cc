// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package message contains functions to print messages to the screen
package message

import (
	"context"
	"log/slog"
)

var (
	// SLog is the default structured logger for wrangle messages
	SLog = slog.New(WrangleHandler{})
)

// WrangleHandler is a simple handler that implements the slog.Handler interface
type WrangleHandler struct{}

// Enabled is determined by the pterm log level rather than the slog level
func (h WrangleHandler) Enabled(_ context.Context, level slog.Level) bool {
	switch level {
	case slog.LevelDebug:
		return logLevel >= DebugLevel
	case slog.LevelInfo:
		return logLevel >= InfoLevel
	default:
		return true
	}
}

// WithAttrs is not supported
func (h WrangleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup is not supported
func (h WrangleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Handle routes the record to the matching pterm printer.
// This function ignores any key pairs passed through the record.
func (h WrangleHandler) Handle(_ context.Context, record slog.Record) error {
	level := record.Level
	message := record.Message

	switch level {
	case slog.LevelDebug:
		debugf("%s", message)
	case slog.LevelInfo:
		infof("%s", message)
	case slog.LevelWarn:
		warnf("%s", message)
	case slog.LevelError:
		errorf("%s", message)
	}
	return nil
}
