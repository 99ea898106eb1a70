package main

import (
	"nightlife/config"
	"nightlife/di"
	"nightlife/helper"
	"nightlife/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Nightlife API
// @version 1.0
// @description Venue bookings with Drink Dollars redemption.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
