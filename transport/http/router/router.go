package router

import (
	"salon/internal/handlers/appointment"
	"salon/internal/handlers/auth"
	"salon/internal/handlers/catalog"
	"salon/internal/handlers/client"
	"salon/internal/handlers/ledger"
	"salon/internal/handlers/report"
	"salon/internal/handlers/settings"
	"salon/internal/handlers/user"
	"salon/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Catalog     catalog.Handler
	Client      client.Handler
	Appointment appointment.Handler
	Ledger      ledger.Handler
	Settings    settings.Handler
	Report      report.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(
			r.Middlewares.App.RateLimit(),
			r.Middlewares.AuthRole.APIKey,
			r.Middlewares.AuthRole.Auth,
			r.Middlewares.AuthRole.RBAC,
		)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Client.Router(routerGroup)
		r.DomainHandlers.Appointment.Router(routerGroup)
		r.DomainHandlers.Ledger.Router(routerGroup)
		r.DomainHandlers.Settings.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, middlewares Middlewares) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
	}
}
