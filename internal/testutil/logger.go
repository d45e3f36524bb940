package testutil

import (
	"log/slog"
)

// NopLogger returns a logger whose output goes nowhere. Services take
// a logger unconditionally; tests pass this one.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
