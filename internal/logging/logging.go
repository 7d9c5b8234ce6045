package logging

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnabled returns true if debug mode is enabled via SQLD_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("SQLD_DEBUG") != ""
}

// Level returns the log level for the given verbosity.
// SQLD_DEBUG forces debug regardless of verbose.
func Level(verbose bool) slog.Level {
	if verbose || DebugEnabled() {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// New builds a text logger writing to w.
func New(w io.Writer, verbose bool) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level(verbose),
	})
	return slog.New(handler)
}

// Init installs a stderr logger as the slog default and returns it.
func Init(verbose bool) *slog.Logger {
	logger := New(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
