package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a settings string onto a zerolog level; unknown values mean info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a console-formatted logger writing to w
func New(w io.Writer, level string, color bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}
	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().Timestamp().
		Logger()
}

// Open returns a logger for path, or stderr when path is empty.
// The returned closer must be called on shutdown.
func Open(path, level string) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return New(os.Stderr, level, true), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return New(f, level, false), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
