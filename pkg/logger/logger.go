package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "shadowpay"

// New creates the process logger. pretty switches to a console writer for
// local development; otherwise every line is a JSON object.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return base(level, w).Caller().Logger()
}

// NewWithWriter creates a logger writing JSON to w, for tests.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return base(level, w).Logger()
}

// WithComponent returns a child logger tagged with the component name,
// e.g. "merchant_session" or "mock_wallet".
func WithComponent(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func base(level string, w io.Writer) zerolog.Context {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", serviceName)
}

// parseLevel accepts any zerolog level name, case-insensitively. Unknown
// or empty names fall back to info.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
