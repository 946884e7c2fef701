package router

import (
	"clinicbook/internal/handlers/appointment"
	"clinicbook/internal/handlers/auth"
	"clinicbook/internal/handlers/doctor"
	"clinicbook/internal/handlers/region"
	"clinicbook/internal/handlers/schedule"
	"clinicbook/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Region      region.Handler
	Doctor      doctor.Handler
	Schedule    schedule.Handler
	Appointment appointment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Region.Router(routerGroup)
		r.DomainHandlers.Doctor.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
