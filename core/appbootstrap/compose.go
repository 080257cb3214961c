package appbootstrap

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"incident-registry/api"
	"incident-registry/config"
	"incident-registry/core/incidents"
	"incident-registry/core/store"
	"incident-registry/core/utils"
)

type runtimeComposition struct {
	serverDeps api.ServerDeps
	incidents  store.IncidentsStore
	workers    []api.BackgroundWorker
}

func composeRuntime(cfg *config.AppConfig, logger *utils.Logger) (*runtimeComposition, error) {
	incidentsStore := store.NewMemoryIncidentsStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := incidents.NewMetrics(registry, func() float64 {
		return float64(incidentsStore.CountIncidents(context.Background()))
	})
	incidentsSvc := incidents.NewService(incidentsStore, metrics, logger)

	reporter, err := incidents.NewReporter(cfg.Reporter, incidentsStore, logger)
	if err != nil {
		return nil, err
	}

	return &runtimeComposition{
		serverDeps: api.ServerDeps{
			IncidentsSvc:   incidentsSvc,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		},
		incidents: incidentsStore,
		workers:   []api.BackgroundWorker{reporter},
	}, nil
}
