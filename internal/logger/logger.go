package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Output is JSON on stderr unless console is
// set, in which case a human-readable writer is used. An unknown level falls
// back to info.
func New(level string, console bool) zerolog.Logger {
	return newWithWriter(os.Stderr, level, console)
}

func newWithWriter(w io.Writer, level string, console bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if console {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}
