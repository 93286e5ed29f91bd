package main

import (
	"context"
	"os"

	"venuebook/config"
	"venuebook/di"
	"venuebook/helper"
	"venuebook/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength     = 2
	seedArgLength = 3
)

func main() {
	cfg := config.Get()

	logger.Init(cfg, "migrate")

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) or 'seed <file>' is required")
	}

	switch action := os.Args[1]; action {
	case "up", "down", "drop", "step-up":
		if err := helper.Runner(cfg, action); err != nil {
			log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
		}
	case "seed":
		if len(os.Args) < seedArgLength {
			log.Fatal().Msg("Fixture file is required: seed <file>")
		}

		seeder, err := di.InitializeSeeder()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize seeder")
		}

		if err := seeder.SeedFile(context.Background(), os.Args[2]); err != nil {
			log.Fatal().Err(err).Str("file", os.Args[2]).Msg("Seeding failed")
		}
	default:
		log.Fatal().Str("action", action).Msg("Invalid direction. Use 'up', 'down', 'drop', 'step-up' or 'seed <file>'")
	}
}
