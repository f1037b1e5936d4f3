package logging

import (
	"io"
	"os"
	"time"

	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tailtrack/tailtrack/internal/shared/config"
)

// NewLogger creates a zerolog logger with pretty console output for development or JSON output for production,
// and returns the Sentry writer (nil outside production) so the server can flush it on shutdown.
func NewLogger(cfg *config.Config) (zerolog.Logger, *sentryzerolog.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(cfg.LogLevel))

	if !cfg.IsEnvProd() {
		return NewConsoleLogger(os.Stderr), nil
	}

	sentryWriter, err := sentryzerolog.New(sentryzerolog.Config{
		Options: sentryzerolog.Options{
			Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
			WithBreadcrumbs: true,
			FlushTimeout:    3 * time.Second,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Sentry writer, using console only")
		return NewConsoleLogger(os.Stderr), nil
	}

	log.Info().Msg("Zerolog Sentry writer initialized")

	// JSON to stderr, errors and above also go to Sentry
	multiWriter := zerolog.MultiLevelWriter(os.Stderr, sentryWriter)

	return zerolog.New(multiWriter).
		With().
		Timestamp().
		Caller().
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Logger(), sentryWriter
}

// NewConsoleLogger is the development logger; the CLI uses it as well.
func NewConsoleLogger(out io.Writer) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(consoleWriter).
		With().
		Timestamp().
		Caller().
		Logger()
}

// ParseLevel falls back to info when the level is empty or unknown.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
