package main

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

type env struct {
	cmd     *command
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	logger  *slog.Logger
}

// newLogger logs text to terminals and JSON lines otherwise. Only warnings
// and errors are shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
