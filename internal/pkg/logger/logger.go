// Package logger builds the service's zerolog root logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to out at level. An unknown level falls back to info.
func New(out io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Default logs to stderr in console format at info level.
func Default() zerolog.Logger {
	return New(os.Stderr, "info", FormatConsole)
}

// Nop discards everything. Used by tests and as the fallback for a nil logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
