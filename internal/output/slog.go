package output

import (
	"io"
	"log/slog"
)

// NewSlogLogger returns the structured logger handed to the build core.
// Verbose mode lowers the level to debug; JSON mode switches to a JSON handler.
func NewSlogLogger(w io.Writer, verbose, json bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
