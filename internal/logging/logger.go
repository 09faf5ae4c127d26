package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Options describes logger construction parameters.
type Options struct {
	Level    string
	Colorize bool
}

// New constructs a slog logger writing console-formatted records to w.
func New(w io.Writer, opts Options) *slog.Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(opts.Level))
	return slog.New(newConsoleHandler(w, levelVar, opts.Colorize))
}

// Default returns a stdout logger with color detection.
func Default(level string) *slog.Logger {
	return New(os.Stdout, Options{Level: level, Colorize: isTerminal(os.Stdout)})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
