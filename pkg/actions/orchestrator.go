package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kasuboski/arrqueue/pkg/logger"
	"github.com/kasuboski/arrqueue/pkg/machine"
	"github.com/kasuboski/arrqueue/pkg/queue"
	"golang.org/x/sync/errgroup"
)

// State is where an action run is in its lifecycle
type State string

const (
	StatePending    State = "pending"
	StateSkipped    State = "skipped"
	StateRejected   State = "rejected"
	StateProjected  State = "projected"
	StateDispatched State = "dispatched"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
	StateRolledBack State = "rolledBack"
	StateReconciled State = "reconciled"
)

func newRunMachine() *machine.StateMachine[State] {
	return machine.New(StatePending,
		machine.From(StatePending).To(StateSkipped, StateRejected, StateProjected),
		machine.From(StateProjected).To(StateDispatched),
		machine.From(StateDispatched).To(StateSucceeded, StateFailed),
		machine.From(StateFailed).To(StateRolledBack),
		machine.From(StateSucceeded).To(StateReconciled),
		machine.From(StateRolledBack).To(StateReconciled),
	)
}

// Run reports what one Execute call did
type Run struct {
	ID        uuid.UUID `json:"id"`
	Action    Kind      `json:"action"`
	State     State     `json:"state"`
	Requested int       `json:"requested"`
	Targeted  int       `json:"targeted"`
	Calls     []Call    `json:"calls"`
	Err       string    `json:"error,omitempty"`

	// Transitions lists every state the run passed through, starting at pending
	Transitions []State `json:"transitions"`
}

type Orchestrator struct {
	remote Remote
	cache  ViewCache
}

func NewOrchestrator(remote Remote, cache ViewCache) *Orchestrator {
	return &Orchestrator{
		remote: remote,
		cache:  cache,
	}
}

// Execute applies an action to records. The cached view is projected before any
// remote call goes out and restored from a snapshot if any call fails. Every
// call is awaited before the outcome is decided. The authoritative view is
// refetched afterwards either way. A nil opts uses DefaultOptions.
func (o *Orchestrator) Execute(ctx context.Context, kind Kind, records []queue.Record, opts *Options) (Run, error) {
	run := Run{
		ID:        uuid.New(),
		Action:    kind,
		State:     StatePending,
		Requested: len(records),
		Calls:     []Call{},

		Transitions: []State{StatePending},
	}
	log := logger.FromCtx(ctx, "action", kind, "run", run.ID.String())

	m := newRunMachine()
	advance := func(s State) {
		if err := m.Transition(s); err != nil {
			log.Errorw("unexpected action state", "error", err)
		}
		run.State = m.Current()
		run.Transitions = m.History()
	}

	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}

	if !kind.Valid() {
		advance(StateRejected)
		run.Err = ErrUnknownAction.Error()
		return run, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}

	targets := records
	if kind != KindDelete {
		targets = FilterCapable(kind, records)
	}
	run.Targeted = len(targets)

	calls, err := Plan(kind, targets, options)
	if err != nil {
		advance(StateRejected)
		run.Err = err.Error()
		return run, err
	}

	if len(calls) == 0 {
		log.Debugw("nothing to do", "requested", len(records), "targeted", len(targets))
		advance(StateSkipped)
		return run, nil
	}
	run.Calls = calls

	snapshot := o.cache.Snapshot()
	o.cache.Replace(Project(snapshot, kind, planned(kind, targets)))
	advance(StateProjected)

	log.Debugw("dispatching action", "calls", len(calls), "targeted", len(targets))
	advance(StateDispatched)
	err = o.dispatch(ctx, kind, options, calls)
	if err != nil {
		advance(StateFailed)
		run.Err = err.Error()
		log.Errorw("action failed, rolling back", "error", err)
		o.cache.Replace(snapshot)
		advance(StateRolledBack)
	} else {
		advance(StateSucceeded)
	}

	if ierr := o.cache.Invalidate(ctx); ierr != nil {
		log.Warnw("failed to refetch queue after action", "error", ierr)
	} else {
		advance(StateReconciled)
	}

	return run, err
}

// planned drops the targets Plan left out of every call
func planned(kind Kind, targets []queue.Record) []queue.Record {
	if kind != KindManualImport {
		return targets
	}
	out := make([]queue.Record, 0, len(targets))
	for _, r := range targets {
		if r.DownloadID != "" {
			out = append(out, r)
		}
	}
	return out
}

// dispatch fires every call at once and waits for all of them. A failing call
// does not cancel its siblings.
func (o *Orchestrator) dispatch(ctx context.Context, kind Kind, opts Options, calls []Call) error {
	errs := make([]error, len(calls))

	var g errgroup.Group
	for i, c := range calls {
		i, c := i, c
		g.Go(func() error {
			errs[i] = o.call(ctx, kind, opts, c)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (o *Orchestrator) call(ctx context.Context, kind Kind, opts Options, c Call) error {
	ctx = logger.WithInstance(ctx, string(c.Service), c.InstanceID)

	if c.Bulk {
		err := o.remote.Bulk(ctx, BulkRequest{
			InstanceID: c.InstanceID,
			Service:    c.Service,
			IDs:        c.IDs,
			Action:     kind,
			Options:    opts,
		})
		if err != nil {
			return fmt.Errorf("%s %d items on %s: %w", kind, len(c.IDs), c.InstanceID, err)
		}
		return nil
	}

	req := SingleRequest{
		InstanceID: c.InstanceID,
		Service:    c.Service,
		Action:     kind,
		Options:    opts,
		DownloadID: c.DownloadID,
		Search:     c.Search,
	}
	if len(c.IDs) > 0 {
		req.ItemID = c.IDs[0]
	}

	if err := o.remote.Single(ctx, req); err != nil {
		if c.DownloadID != "" {
			return fmt.Errorf("%s download %s on %s: %w", kind, c.DownloadID, c.InstanceID, err)
		}
		return fmt.Errorf("%s item %d on %s: %w", kind, req.ItemID, c.InstanceID, err)
	}
	return nil
}
