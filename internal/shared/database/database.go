package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/tailtrack/tailtrack/internal/shared/config"
)

// NewPgxPool creates a PostgreSQL connection pool with production-ready settings.
// It configures connection limits, timeouts, and lifetimes optimized for web applications.
// Pool settings: max 10 connections, min 2 connections, 1-hour max lifetime, 30-min idle timeout.
// The pool is closed when the fx app stops.
func NewPgxPool(cfg *config.Config, logger zerolog.Logger, lc fx.Lifecycle) (*pgxpool.Pool, error) {
	logger = logger.With().Str("component", "database").Logger()
	logger.Debug().Msg("Initializing database connection pool")

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse database URL")
		return nil, err
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	logger.Debug().
		Int32("max_conns", poolConfig.MaxConns).
		Int32("min_conns", poolConfig.MinConns).
		Dur("max_conns_lifetime", poolConfig.MaxConnLifetime).
		Dur("max_conns_idletime", poolConfig.MaxConnIdleTime).
		Msg("Database connection pool configuration")

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create database connection pool")
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info().Msg("Closing database connection pool")
			pool.Close()
			return nil
		},
	})

	logger.Debug().Msg("Database connection pool created successfully")
	return pool, nil
}
