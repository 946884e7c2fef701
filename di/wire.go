//go:build wireinject
// +build wireinject

package di

import (
	"clinicbook/config"
	"clinicbook/infras/jwt"
	"clinicbook/infras/kafka"
	"clinicbook/infras/otel"
	"clinicbook/infras/postgres"
	"clinicbook/infras/redis"
	"clinicbook/infras/s3"
	"clinicbook/permissions"
	"clinicbook/shared/cache"
	"clinicbook/transport/http"
	"clinicbook/transport/http/middleware"
	"clinicbook/transport/http/router"

	"github.com/google/wire"

	appointmentRepository "clinicbook/internal/domains/appointment/repository"
	appointmentService "clinicbook/internal/domains/appointment/service"
	authService "clinicbook/internal/domains/auth/service"
	doctorRepository "clinicbook/internal/domains/doctor/repository"
	doctorService "clinicbook/internal/domains/doctor/service"
	regionRepository "clinicbook/internal/domains/region/repository"
	regionService "clinicbook/internal/domains/region/service"
	scheduleRepository "clinicbook/internal/domains/schedule/repository"
	scheduleService "clinicbook/internal/domains/schedule/service"
	userRepository "clinicbook/internal/domains/user/repository"
	userService "clinicbook/internal/domains/user/service"

	appointmentHandler "clinicbook/internal/handlers/appointment"
	authHandler "clinicbook/internal/handlers/auth"
	doctorHandler "clinicbook/internal/handlers/doctor"
	regionHandler "clinicbook/internal/handlers/region"
	scheduleHandler "clinicbook/internal/handlers/schedule"
	userHandler "clinicbook/internal/handlers/user"
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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var regionDomain = wire.NewSet(
	regionRepository.NewDivision,
	regionRepository.NewDistrict,
	regionRepository.NewThana,
	regionService.New,
)

var doctorDomain = wire.NewSet(
	doctorRepository.NewSpecialization,
	doctorRepository.NewProfile,
	doctorService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentRepository.NewStatusLog,
	appointmentRepository.NewReminder,
	appointmentRepository.NewReport,
	appointmentService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	regionDomain,
	doctorDomain,
	scheduleDomain,
	appointmentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	regionHandler.New,
	doctorHandler.New,
	scheduleHandler.New,
	appointmentHandler.New,
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

// InitializeJobService wires the appointment service alone for the
// background worker, without the HTTP stack.
func InitializeJobService() appointmentService.Appointment {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		doctorRepository.NewProfile,
		scheduleDomain,
		appointmentDomain,
	)

	return nil
}
