package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a text logger on stderr. Debug lowers the level so the
// pipeline's debug lines, which carry document and signature bytes, are
// emitted.
func New(debug bool) *slog.Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
