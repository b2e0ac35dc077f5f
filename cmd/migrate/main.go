package main

import (
	"os"
	"salon/config"
	"salon/helper"
	"salon/shared/logger"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	minArgs   = 2
	forceArgs = 3
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if len(os.Args) < minArgs {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop or force <version>")
	}

	action := os.Args[1]
	version := 0

	if action == helper.ActionForce {
		if len(os.Args) < forceArgs {
			log.Fatal().Msg("force needs the version to mark as clean")
		}

		var err error

		version, err = strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Str("version", os.Args[2]).Msg("Invalid migration version")
		}
	}

	if err := helper.Migrate(cfg, action, version); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
