// Package logging configures structured logging for the Shopify access
// layer using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level is a log level name as it appears in configuration.
type Level string

const (
	// LevelDebug logs request flow details (attempts, cursors, sleeps).
	LevelDebug Level = "debug"

	// LevelInfo logs normal operation events.
	LevelInfo Level = "info"

	// LevelWarn logs recoverable conditions such as 429 backoffs.
	LevelWarn Level = "warn"

	// LevelError logs failures that cross the client boundary.
	LevelError Level = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level to emit.
	Level Level

	// Pretty switches from JSON to human-readable console output.
	Pretty bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the default logger configuration: info-level JSON
// to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// New returns a child of the global logger tagged with a component name,
// e.g. "client", "pagination", "session".
func New(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func parseLevel(level Level) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Field conventions used across the module:
//   - shop: shop hostname
//   - path: Admin API path relative to the versioned base
//   - status: HTTP status code
//   - attempt: retry attempt number (1-based)
//   - retry_after: server-directed backoff duration
//   - pages / items: pagination progress counters
