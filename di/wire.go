//go:build wireinject
// +build wireinject

package di

import (
	"nightlife/config"
	"nightlife/infras/jwt"
	"nightlife/infras/kafka"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/infras/rabbitmq"
	"nightlife/infras/redis"
	"nightlife/infras/s3"
	"nightlife/permissions"
	"nightlife/shared/cache"
	"nightlife/shared/event"
	"nightlife/shared/randcode"
	gRepo "nightlife/shared/repository"
	"nightlife/transport/http"
	"nightlife/transport/http/middleware"
	"nightlife/transport/http/router"

	alcoholBalanceRepository "nightlife/internal/domains/alcoholbalance/repository"
	alcoholBalanceService "nightlife/internal/domains/alcoholbalance/service"
	authService "nightlife/internal/domains/auth/service"
	bookingRepository "nightlife/internal/domains/booking/repository"
	bookingService "nightlife/internal/domains/booking/service"
	catalogRepository "nightlife/internal/domains/catalog/repository"
	catalogService "nightlife/internal/domains/catalog/service"
	favouriteRepository "nightlife/internal/domains/favourite/repository"
	favouriteService "nightlife/internal/domains/favourite/service"
	ledgerRepository "nightlife/internal/domains/ledger/repository"
	ledgerService "nightlife/internal/domains/ledger/service"
	profileRepository "nightlife/internal/domains/profile/repository"
	profileService "nightlife/internal/domains/profile/service"
	redemptionRepository "nightlife/internal/domains/redemption/repository"
	redemptionService "nightlife/internal/domains/redemption/service"
	reviewRepository "nightlife/internal/domains/review/repository"
	reviewService "nightlife/internal/domains/review/service"
	venueRepository "nightlife/internal/domains/venue/repository"
	venueService "nightlife/internal/domains/venue/service"
	verificationService "nightlife/internal/domains/verification/service"

	alcoholBalanceHandler "nightlife/internal/handlers/alcoholbalance"
	authHandler "nightlife/internal/handlers/auth"
	bookingHandler "nightlife/internal/handlers/booking"
	cartHandler "nightlife/internal/handlers/cart"
	favouriteHandler "nightlife/internal/handlers/favourite"
	ledgerHandler "nightlife/internal/handlers/ledger"
	merchantHandler "nightlife/internal/handlers/merchant"
	profileHandler "nightlife/internal/handlers/profile"
	reviewHandler "nightlife/internal/handlers/review"
	venueHandler "nightlife/internal/handlers/venue"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	rabbitmq.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.New,
	randcode.NewGenerator,
	gRepo.NewTransactor,
)

var identityDomain = wire.NewSet(
	profileRepository.New,
	profileService.New,
	authService.New,
)

var catalogDomain = wire.NewSet(
	venueRepository.New,
	venueRepository.NewRoom,
	venueService.New,
	catalogRepository.New,
	catalogService.New,
)

var ledgerDomain = wire.NewSet(
	ledgerRepository.NewBalance,
	ledgerRepository.NewTransaction,
	ledgerService.New,
)

var redemptionDomain = wire.NewSet(
	redemptionRepository.New,
	redemptionService.NewCart,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	verificationService.New,
)

var alcoholBalanceDomain = wire.NewSet(
	alcoholBalanceRepository.New,
	alcoholBalanceService.New,
)

var venueEngagementDomain = wire.NewSet(
	favouriteRepository.New,
	favouriteService.New,
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	identityDomain,
	catalogDomain,
	ledgerDomain,
	redemptionDomain,
	bookingDomain,
	alcoholBalanceDomain,
	venueEngagementDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	profileHandler.New,
	venueHandler.New,
	ledgerHandler.New,
	cartHandler.New,
	bookingHandler.New,
	merchantHandler.New,
	alcoholBalanceHandler.New,
	favouriteHandler.New,
	reviewHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
