package main

import (
	"shareit/config"
	"shareit/di"
	"shareit/helper"
	"shareit/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	if sink := logger.SetFileOutput(cfg); sink != nil {
		defer sink.Close()
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to bring the schema up to date")
		}
	}

	log.Info().Str("app", cfg.App.Name).Str("addr", cfg.Server.Addr()).Msg("Starting shareit")

	di.InitializeService().Serve()
}
