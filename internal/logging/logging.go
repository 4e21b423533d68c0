package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger on stderr. Stdout stays reserved for
// transcript output.
func New() zerolog.Logger {
	return NewWithLevel("warn")
}

// NewWithLevel creates a console logger at the given level. Unknown
// levels fall back to warn.
func NewWithLevel(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
