//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/mail"
	"hotel/infras/otel"
	"hotel/infras/payhere"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/infras/sms"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/transaction"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	adminRepository "hotel/internal/domains/admin/repository"
	adminService "hotel/internal/domains/admin/service"
	authService "hotel/internal/domains/auth/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	emergencyRepository "hotel/internal/domains/emergency/repository"
	emergencyService "hotel/internal/domains/emergency/service"
	galleryRepository "hotel/internal/domains/gallery/repository"
	galleryService "hotel/internal/domains/gallery/service"
	notificationRepository "hotel/internal/domains/notification/repository"
	notificationService "hotel/internal/domains/notification/service"
	paymentRepository "hotel/internal/domains/payment/repository"
	paymentService "hotel/internal/domains/payment/service"
	refundService "hotel/internal/domains/refund/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	roomAvailabilityRepository "hotel/internal/domains/roomavailability/repository"
	roomAvailabilityService "hotel/internal/domains/roomavailability/service"
	seasonalRateRepository "hotel/internal/domains/seasonalrate/repository"
	seasonalRateService "hotel/internal/domains/seasonalrate/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"

	adminHandler "hotel/internal/handlers/admin"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	emergencyHandler "hotel/internal/handlers/emergency"
	galleryHandler "hotel/internal/handlers/gallery"
	notificationHandler "hotel/internal/handlers/notification"
	paymentHandler "hotel/internal/handlers/payment"
	roomHandler "hotel/internal/handlers/room"
	seasonalRateHandler "hotel/internal/handlers/seasonalrate"
	userHandler "hotel/internal/handlers/user"
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
	mail.New,
	sms.New,
	payhere.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	transaction.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
	roomAvailabilityRepository.New,
	roomAvailabilityService.New,
	seasonalRateRepository.New,
	seasonalRateService.New,
	galleryRepository.New,
	galleryService.New,
)

var reservationDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	paymentRepository.New,
	paymentService.New,
)

var emergencyDomain = wire.NewSet(
	emergencyRepository.New,
	emergencyService.New,
	refundService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var adminDomain = wire.NewSet(
	adminRepository.New,
	adminService.New,
)

var domains = wire.NewSet(
	userDomain,
	roomDomain,
	reservationDomain,
	emergencyDomain,
	notificationDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	seasonalRateHandler.New,
	galleryHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	emergencyHandler.New,
	notificationHandler.New,
	adminHandler.New,
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
