package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"venuebook/config"
	"venuebook/di"
	"venuebook/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg, "sweeper")

	sweeper, err := di.InitializeSweeper()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize sweeper")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper.Run(ctx)
}
