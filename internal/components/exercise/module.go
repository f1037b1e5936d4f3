package exercise

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/tailtrack/tailtrack/internal/shared/config"
	"github.com/tailtrack/tailtrack/internal/shared/database"
)

// StoreModule provides the Repository for the configured STORE_DRIVER and
// prepares its schema when the app starts.
func StoreModule(driver string) (fx.Option, error) {
	switch driver {
	case config.StoreDriverPostgres, "":
		return fx.Options(
			fx.Provide(database.NewPgxPool, NewRepo),
			fx.Invoke(func(lc fx.Lifecycle, pool *pgxpool.Pool) {
				lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
					return EnsureSchema(ctx, pool)
				}})
			}),
		), nil
	case config.StoreDriverMongo:
		return fx.Options(
			fx.Provide(database.NewMongoDatabase, NewMongoRepo),
			fx.Invoke(func(lc fx.Lifecycle, db *mongo.Database) {
				lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
					return EnsureIndexes(ctx, db)
				}})
			}),
		), nil
	case config.StoreDriverMemory:
		return fx.Provide(NewMemoryRepo), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
