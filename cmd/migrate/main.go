package main

import (
	"os"
	"shareit/config"
	"shareit/helper"
	"shareit/shared/logger"
	"strings"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 {
		log.Fatal().Msgf("Migration action is required, one of: %s", strings.Join(helper.Actions(), ", "))
	}

	if err := helper.Migrate(config.Get(), os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
