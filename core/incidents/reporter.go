package incidents

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"incident-registry/config"
	"incident-registry/core/store"
	"incident-registry/core/utils"
)

type Summary struct {
	Total    int
	NextID   int64
	ByStatus map[string]int
}

func (s Summary) String() string {
	keys := make([]string, 0, len(s.ByStatus))
	for k := range s.ByStatus {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, s.ByStatus[k]))
	}
	return fmt.Sprintf("total=%d next_id=%d by_status=%s", s.Total, s.NextID, strings.Join(parts, ","))
}

// Reporter periodically logs a summary of the registry contents.
type Reporter struct {
	cfg      config.ReporterConfig
	store    store.IncidentsStore
	logger   *utils.Logger
	schedule cron.Schedule

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	running bool
}

func NewReporter(cfg config.ReporterConfig, st store.IncidentsStore, logger *utils.Logger) (*Reporter, error) {
	r := &Reporter{cfg: cfg, store: st, logger: logger}
	if !cfg.Enabled {
		return r, nil
	}
	sched, err := cron.ParseStandard(strings.TrimSpace(cfg.Schedule))
	if err != nil {
		return nil, fmt.Errorf("reporter schedule %q: %w", cfg.Schedule, err)
	}
	r.schedule = sched
	return r, nil
}

func (r *Reporter) StartWithContext(ctx context.Context) {
	if r == nil || r.store == nil || !r.cfg.Enabled || r.schedule == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New()
	c.Schedule(r.schedule, cron.FuncJob(func() {
		_, _ = r.RunOnce(runCtx)
	}))
	c.Start()
	r.cron = c
	r.cancel = cancel
	r.running = true
}

func (r *Reporter) StopWithContext(ctx context.Context) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	c := r.cron
	cancel := r.cancel
	wasRunning := r.running
	r.cron = nil
	r.cancel = nil
	r.running = false
	r.mu.Unlock()
	if !wasRunning || c == nil {
		return nil
	}
	cancel()
	done := c.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Reporter) RunOnce(ctx context.Context) (Summary, error) {
	items, err := r.store.ListIncidents(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Errorf("SUMMARY incidents failed: %v", err)
		}
		return Summary{}, err
	}
	sum := Summary{Total: len(items), NextID: r.store.NextID(), ByStatus: map[string]int{}}
	for _, inc := range items {
		sum.ByStatus[inc.Status]++
	}
	if r.logger != nil {
		r.logger.Printf("SUMMARY incidents %s", sum)
	}
	return sum, nil
}
