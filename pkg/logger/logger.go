// Package logger provides a structured zerolog logger for rtkit.
//
// Logs always go to stderr so stdout carries nothing but response bodies.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init creates a stderr console logger configured with the given log level.
func Init(level string) zerolog.Logger {
	return New(os.Stderr, level)
}

// New creates a console logger writing to w.
// Supported levels: debug, info, warn, error. Defaults to info.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(
		zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		},
	).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel maps a config log_level string to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
