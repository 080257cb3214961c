package incidents

import (
	"context"

	"incident-registry/core/store"
	"incident-registry/core/utils"
)

// Service fronts the registry for the HTTP layer and records an audit line
// and metrics for every mutation.
type Service struct {
	store   store.IncidentsStore
	metrics *Metrics
	logger  *utils.Logger
}

func NewService(st store.IncidentsStore, metrics *Metrics, logger *utils.Logger) *Service {
	return &Service{store: st, metrics: metrics, logger: logger}
}

func (s *Service) Store() store.IncidentsStore {
	return s.store
}

func (s *Service) Create(ctx context.Context, in store.CreateIncidentInput) (*store.Incident, error) {
	incident, err := s.store.CreateIncident(ctx, in)
	if err != nil {
		s.metrics.observeError("create", err)
		return nil, err
	}
	s.metrics.observeCreate()
	s.Log("incident.create", incident.ID, "status="+incident.Status)
	return incident, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status *string) (*store.Incident, error) {
	incident, err := s.store.UpdateIncidentStatus(ctx, id, status)
	if err != nil {
		s.metrics.observeError("update", err)
		return nil, err
	}
	s.metrics.observeStatusUpdate()
	s.Log("incident.status", incident.ID, "status="+incident.Status)
	return incident, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*store.Incident, error) {
	incident, err := s.store.GetIncident(ctx, id)
	if err != nil {
		s.metrics.observeError("get", err)
		return nil, err
	}
	return incident, nil
}

func (s *Service) List(ctx context.Context) ([]store.Incident, error) {
	items, err := s.store.ListIncidents(ctx)
	if err != nil {
		s.metrics.observeError("list", err)
		return nil, err
	}
	return items, nil
}

func (s *Service) Log(action string, id int64, details string) {
	if s.logger == nil {
		return
	}
	s.logger.Printf("AUDIT %s id=%d %s", action, id, details)
}
