package main

import (
	"venuebook/config"
	"venuebook/di"
	"venuebook/helper"
	"venuebook/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title venuebook API
// @version 1.0
// @description Box and court availability, pricing and booking.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.Init(cfg, cfg.App.Name)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
