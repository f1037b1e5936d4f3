package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/tailtrack/tailtrack/internal/shared/config"
)

// NewMongoDatabase connects to MongoDB and returns the configured database.
// The driver connects lazily; reachability is reported by the health check.
func NewMongoDatabase(cfg *config.Config, logger zerolog.Logger, lc fx.Lifecycle) (*mongo.Database, error) {
	logger = logger.With().Str("component", "database").Logger()
	logger.Debug().Str("database", cfg.MongoDatabase).Msg("Initializing MongoDB client")

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create MongoDB client")
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Disconnecting MongoDB client")
			return client.Disconnect(ctx)
		},
	})

	return client.Database(cfg.MongoDatabase), nil
}
