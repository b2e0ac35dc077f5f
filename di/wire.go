//go:build wireinject
// +build wireinject

package di

import (
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/kafka"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/infras/redis"
	"salon/infras/s3"
	"salon/infras/telegram"
	"salon/internal/reminder"
	"salon/permissions"
	"salon/shared/cache"
	"salon/shared/lock"
	"salon/transport/http"
	"salon/transport/http/middleware"
	"salon/transport/http/router"

	appointmentRepository "salon/internal/domains/appointment/repository"
	appointmentService "salon/internal/domains/appointment/service"
	authService "salon/internal/domains/auth/service"
	catalogRepository "salon/internal/domains/catalog/repository"
	catalogService "salon/internal/domains/catalog/service"
	clientRepository "salon/internal/domains/client/repository"
	clientService "salon/internal/domains/client/service"
	ledgerRepository "salon/internal/domains/ledger/repository"
	ledgerService "salon/internal/domains/ledger/service"
	reportService "salon/internal/domains/report/service"
	settingsRepository "salon/internal/domains/settings/repository"
	settingsService "salon/internal/domains/settings/service"
	userRepository "salon/internal/domains/user/repository"
	userService "salon/internal/domains/user/service"

	appointmentHandler "salon/internal/handlers/appointment"
	authHandler "salon/internal/handlers/auth"
	catalogHandler "salon/internal/handlers/catalog"
	clientHandler "salon/internal/handlers/client"
	ledgerHandler "salon/internal/handlers/ledger"
	reportHandler "salon/internal/handlers/report"
	settingsHandler "salon/internal/handlers/settings"
	userHandler "salon/internal/handlers/user"

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
	kafka.New,
	s3.New,
	telegram.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.NewRedisLocker,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var clientDomain = wire.NewSet(
	clientRepository.New,
	clientService.New,
)

var ledgerDomain = wire.NewSet(
	ledgerRepository.New,
	ledgerService.New,
)

var settingsDomain = wire.NewSet(
	settingsRepository.NewHours,
	settingsRepository.NewSalonInfo,
	settingsService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	clientDomain,
	ledgerDomain,
	settingsDomain,
	appointmentDomain,
	userDomain,
	authService.New,
	reportService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	catalogHandler.New,
	clientHandler.New,
	appointmentHandler.New,
	ledgerHandler.New,
	settingsHandler.New,
	reportHandler.New,
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

func InitializeWorker() *reminder.Worker {
	wire.Build(
		config.Get,
		infrastructures,
		sharedHelpers,
		catalogDomain,
		clientDomain,
		ledgerDomain,
		settingsDomain,
		appointmentDomain,
		reminder.New,
	)

	return &reminder.Worker{}
}
