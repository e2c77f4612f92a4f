package common

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// NewLogger creates the process logger. Verbose enables debug records.
// Every record carries the run id so concurrent runs can be told apart.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", uuid.NewString())
}
