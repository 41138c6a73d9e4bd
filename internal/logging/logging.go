// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level maps the verbosity flags onto a slog level. Verbose wins over quiet.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// New returns a pretty logger writing to dest.
func New(dest io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(dest, &tint.Options{
		TimeFormat: time.TimeOnly,
		NoColor:    !IsTerminal(dest),
		Level:      level,
	}))
}

// Setup installs a stderr logger as the slog default and returns it.
func Setup(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
