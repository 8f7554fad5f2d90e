// Package logger configures the process-wide structured logger. It wraps
// github.com/rs/zerolog, giving cmd/shellpipe a console-friendly writer by
// default and a plain JSON stream when --no-color is set. Whether the output
// is a terminal is not checked.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger at the given level, writing to w. level is one
// of zerolog's names ("debug", "info", "warn", "error"); an unrecognized
// value falls back to "info". human selects the console writer (colored,
// human-readable); when false, raw JSON lines are written instead.
func New(level string, w io.Writer, human bool) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	out := w
	if human {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).Level(parsed).With().Timestamp().Logger()
}
