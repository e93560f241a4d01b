package main

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. The level comes from the
// config's debug flag, so one logger serves the render loop, the sources
// and the memory stats alike.
func NewLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
