package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kasuboski/arrqueue/config"
	"github.com/kasuboski/arrqueue/pkg/actions"
	"github.com/kasuboski/arrqueue/pkg/arr"
	"github.com/kasuboski/arrqueue/pkg/diagnostics"
	"github.com/kasuboski/arrqueue/pkg/issues"
	"github.com/kasuboski/arrqueue/pkg/logger"
	"github.com/kasuboski/arrqueue/pkg/pagination"
	"github.com/kasuboski/arrqueue/pkg/queue"
	"github.com/kasuboski/arrqueue/pkg/summary"
	"golang.org/x/sync/errgroup"
)

var ErrAllInstancesFailed = errors.New("every instance failed to refresh")

// QueueManager keeps the aggregated queue of every configured instance and
// runs actions against it
type QueueManager struct {
	clients      []arr.Client
	store        *ViewStore
	orchestrator *actions.Orchestrator
	config       config.Manager
	now          func() time.Time
}

func New(router *arr.Router, cfg config.Manager) *QueueManager {
	m := &QueueManager{
		clients: router.Clients(),
		config:  cfg,
		now:     time.Now,
	}
	m.store = NewViewStore(m.Refresh)
	m.orchestrator = actions.NewOrchestrator(router, m.store)
	return m
}

// View returns a copy of the cached aggregated queue
func (m *QueueManager) View() queue.View {
	return m.store.Snapshot()
}

// Refresh fetches every instance concurrently. An instance that fails keeps
// its last known records and carries the error, the others are unaffected.
// An error is returned only when every instance failed.
func (m *QueueManager) Refresh(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	results := make([]queue.InstanceQueue, len(m.clients))
	errs := make([]error, len(m.clients))

	var g errgroup.Group
	for i, c := range m.clients {
		i, c := i, c
		g.Go(func() error {
			inst := c.Instance()
			ictx := logger.WithInstance(ctx, string(c.Service()), inst.ID)

			iq, err := c.FetchQueue(ictx, m.config.PageSize)
			if err != nil {
				logger.FromCtx(ictx).Warnw("failed to fetch queue", "error", err)
				errs[i] = fmt.Errorf("%s: %w", inst.ID, err)

				iq = queue.InstanceQueue{
					InstanceID:   inst.ID,
					InstanceName: inst.DisplayName(),
					Service:      c.Service(),
					Records:      []queue.Record{},
				}
				if previous, ok := m.store.Instance(c.Service(), inst.ID); ok {
					iq = previous
				}
				iq.Error = err.Error()
			}

			results[i] = iq
			return nil
		})
	}
	_ = g.Wait()

	m.store.Replace(queue.NewView(results...))

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if len(m.clients) > 0 && failed == len(m.clients) {
		return fmt.Errorf("%w: %w", ErrAllInstancesFailed, errors.Join(errs...))
	}

	m.store.markRefreshed(m.now())
	log.Debugw("refreshed queue", "instances", len(m.clients), "failed", failed)
	return nil
}

// Rows groups the filtered aggregated queue and pages over the rows, so a
// group is never split across pages
func (m *QueueManager) Rows(ctx context.Context, req RowsRequest) (RowsResponse, error) {
	view := m.store.Snapshot()

	filter := summary.Filter{
		Problematic: req.Problematic,
		Service:     req.Service,
		InstanceID:  req.InstanceID,
	}
	rows := summary.Build(filter.Apply(view.Aggregated))
	page, meta := pagination.Slice(rows, req.Params)

	instances := make([]InstanceStatus, 0, len(view.Instances))
	for _, iq := range view.Instances {
		instances = append(instances, InstanceStatus{
			InstanceID:   iq.InstanceID,
			InstanceName: iq.InstanceName,
			Service:      iq.Service,
			Records:      len(iq.Records),
			TotalCount:   iq.TotalCount,
			Error:        iq.Error,
		})
	}

	return RowsResponse{
		Rows:        page,
		Meta:        meta,
		Instances:   instances,
		TotalCount:  view.TotalCount,
		RefreshedAt: m.store.RefreshedAt(),
	}, nil
}

// Diagnose explains the state of one record
func (m *QueueManager) Diagnose(ctx context.Context, key string) (Diagnosis, error) {
	r, err := m.store.Snapshot().Find(key)
	if err != nil {
		return Diagnosis{}, fmt.Errorf("%w: %s", err, key)
	}

	d := Diagnosis{
		Record:   r,
		Lines:    diagnostics.Diagnose(r),
		Analysis: issues.Classify(r),
		Rules:    issues.MatchedRules(r),
	}
	if pct, ok := queue.Progress(r); ok {
		d.Progress = &pct
	}
	return d, nil
}

// Execute runs an action on the selected keys. Keys that no longer match a
// cached record are dropped.
func (m *QueueManager) Execute(ctx context.Context, req ActionRequest) (actions.Run, error) {
	log := logger.FromCtx(ctx)
	records := m.store.Snapshot().Aggregated

	sel := queue.NewSelection(req.Keys...)
	if stale := sel.Prune(records); stale > 0 {
		log.Debugw("dropped stale selection keys", "count", stale)
	}

	return m.orchestrator.Execute(ctx, req.Action, sel.Resolve(records), req.Options)
}

// Run refreshes once and then on every refresh interval until ctx is done.
// A non positive interval disables the periodic refresh.
func (m *QueueManager) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	if err := m.Refresh(ctx); err != nil {
		log.Errorw("initial queue refresh failed", "error", err)
	}

	if m.config.RefreshInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(m.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.Refresh(ctx); err != nil {
				log.Errorw("queue refresh failed", "error", err)
			}
		}
	}
}
