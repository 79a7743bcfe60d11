package router

import (
	"shareit/internal/handlers/booking"
	"shareit/internal/handlers/item"
	"shareit/internal/handlers/user"
	"shareit/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking booking.Handler
	Item    item.Handler
	User    user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Identity       middleware.Identity
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Identity.UserID)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Item.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, identity middleware.Identity) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Identity:       identity,
	}
}
