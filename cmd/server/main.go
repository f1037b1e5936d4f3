// TailTrack
// A REST API for logging pet exercise sessions.

package main

import (
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/tailtrack/tailtrack/internal/components/exercise"
	"github.com/tailtrack/tailtrack/internal/server"
	"github.com/tailtrack/tailtrack/internal/shared/config"
	"github.com/tailtrack/tailtrack/internal/shared/logging"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	store, err := exercise.StoreModule(cfg.StoreDriver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	fx.New(
		fx.Supply(cfg),
		store,
		fx.Provide(
			logging.NewLogger,
			func(repo exercise.Repository) server.Pinger { return repo },
			server.NewHealthSrvc,
			server.NewHealthHandler,
			server.NewServer,
			exercise.NewService,
			fx.Annotate(exercise.NewRouter, fx.ResultTags(`name:"exerciseRouter"`)),
		),
		fx.Invoke((*server.Server).Start),
	).Run()
}
