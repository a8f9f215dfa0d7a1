package router

import (
	"hotel/internal/handlers/admin"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/emergency"
	"hotel/internal/handlers/gallery"
	"hotel/internal/handlers/notification"
	"hotel/internal/handlers/payment"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/seasonalrate"
	"hotel/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Room         room.Handler
	SeasonalRate seasonalrate.Handler
	Gallery      gallery.Handler
	Booking      booking.Handler
	Payment      payment.Handler
	Emergency    emergency.Handler
	Notification notification.Handler
	Admin        admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.SeasonalRate.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Emergency.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
