package appbootstrap

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"incident-registry/api"
	"incident-registry/config"
	"incident-registry/core/store"
	"incident-registry/core/utils"
)

// App is the composed process: one registry shared by the HTTP server and
// the background workers.
type App struct {
	cfg     *config.AppConfig
	logger  *utils.Logger
	server  *api.Server
	store   store.IncidentsStore
	workers []api.BackgroundWorker
}

func New(cfg *config.AppConfig, logger *utils.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	rt, err := composeRuntime(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("compose runtime: %w", err)
	}
	return &App{
		cfg:     cfg,
		logger:  logger,
		server:  api.NewServer(cfg, rt.serverDeps, logger),
		store:   rt.incidents,
		workers: rt.workers,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

func (a *App) Store() store.IncidentsStore {
	return a.store
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts
// the server and workers down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	for _, w := range a.workers {
		w.StartWithContext(ctx)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.EffectiveShutdownTimeout())
		defer cancel()
		if a.logger != nil {
			a.logger.Printf("shutting down")
		}
		var firstErr error
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			firstErr = fmt.Errorf("http shutdown: %w", err)
		}
		for _, w := range a.workers {
			if err := w.StopWithContext(shutdownCtx); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("stop worker: %w", err)
			}
		}
		return firstErr
	})
	return g.Wait()
}
