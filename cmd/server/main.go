package main

import (
	"context"
	"os"

	"notive/internal/app/server"
	"notive/internal/app/server/config"
	"notive/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx := context.Background()

	app, err := server.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init app", logger.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server error", logger.Err(err))
		os.Exit(1)
	}
}
