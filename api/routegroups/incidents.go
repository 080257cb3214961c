package routegroups

import (
	"incident-registry/api/handlers"

	"github.com/go-chi/chi/v5"
)

func RegisterIncidents(r chi.Router, health *handlers.HealthHandler, incidents *handlers.IncidentsHandler) {
	r.MethodFunc("GET", "/", health.Check)
	r.Route("/incidents", func(incidentsRouter chi.Router) {
		incidentsRouter.MethodFunc("GET", "/", incidents.List)
		incidentsRouter.MethodFunc("POST", "/", incidents.Create)
		incidentsRouter.MethodFunc("GET", "/{id:[0-9]+}", incidents.Get)
		incidentsRouter.MethodFunc("PUT", "/{id:[0-9]+}", incidents.Update)
	})
}
