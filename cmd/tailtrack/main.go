// tailtrack
// Command line client for the TailTrack records API.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/tailtrack/tailtrack/internal/cli"
	"github.com/tailtrack/tailtrack/internal/client"
	"github.com/tailtrack/tailtrack/internal/shared/logging"
)

func main() {
	logger := logging.NewConsoleLogger(os.Stderr).Level(logging.ParseLevel(os.Getenv("LOG_LEVEL")))

	cfg, err := client.ConfigFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load client config")
	}

	api, err := client.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create client")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.NewCLI(os.Stdout, api, logger).Run(ctx, os.Args[1:]); err != nil {
		code := 1
		if errors.Is(err, cli.ErrUsage) {
			code = 2
		}
		logEvent(logger, err).Msg("tailtrack failed")
		cancel()
		os.Exit(code)
	}
}

func logEvent(logger zerolog.Logger, err error) *zerolog.Event {
	if client.IsValidation(err) {
		return logger.Warn().Err(err)
	}
	return logger.Error().Err(err)
}
