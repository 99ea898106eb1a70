package main

import (
	"nightlife/config"
	"nightlife/helper"
	"nightlife/shared/logger"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/step-up/drop/force) is required")
	}

	cfg := config.Get()

	logger.InitLogger(cfg)
	logger.SetLogLevel(cfg)

	var args []int

	if os.Args[1] == helper.ActionForce {
		if len(os.Args) <= argLength {
			log.Fatal().Msg("force needs the version to mark as clean")
		}

		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid version")
		}

		args = append(args, version)
	}

	if err := helper.Runner(cfg, os.Args[1], args...); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("migration failed")
	}
}
