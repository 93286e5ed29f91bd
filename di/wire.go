//go:build wireinject
// +build wireinject

package di

import (
	"venuebook/config"
	"venuebook/helper"
	"venuebook/infras/kafka"
	"venuebook/infras/metrics"
	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/infras/redis"
	"venuebook/internal/domains/availability/engine"
	availabilityService "venuebook/internal/domains/availability/service"
	bookingRepository "venuebook/internal/domains/booking/repository"
	bookingService "venuebook/internal/domains/booking/service"
	boxRepository "venuebook/internal/domains/box/repository"
	scheduleRepository "venuebook/internal/domains/schedule/repository"
	venueRepository "venuebook/internal/domains/venue/repository"
	availabilityHandler "venuebook/internal/handlers/availability"
	bookingHandler "venuebook/internal/handlers/booking"
	"venuebook/shared/cache"
	"venuebook/shared/timezone"
	"venuebook/transport/http"
	"venuebook/transport/http/middleware"
	"venuebook/transport/http/router"
	"venuebook/transport/sweeper"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.SystemClock,
)

var availabilityDomain = wire.NewSet(
	engine.RulesFromConfig,
	venueRepository.New,
	scheduleRepository.New,
	boxRepository.New,
	availabilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	availabilityDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeSweeper() (*sweeper.Sweeper, error) {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		sweeper.New,
	)

	return &sweeper.Sweeper{}, nil
}

func InitializeSeeder() (*helper.Seeder, error) {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		venueRepository.New,
		scheduleRepository.New,
		boxRepository.New,
		helper.NewSeeder,
	)

	return &helper.Seeder{}, nil
}
