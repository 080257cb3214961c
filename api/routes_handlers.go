package api

import "incident-registry/api/handlers"

type routeHandlers struct {
	health    *handlers.HealthHandler
	incidents *handlers.IncidentsHandler
}

func (s *Server) newRouteHandlers() routeHandlers {
	return routeHandlers{
		health:    handlers.NewHealthHandler(),
		incidents: handlers.NewIncidentsHandler(s.incidentsSvc, s.logger),
	}
}
