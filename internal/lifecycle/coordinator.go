// Package lifecycle drives schedule state transitions: it validates a
// requested transition against the cached state, issues the remote command,
// and commits the new state into the cache only after the service confirms.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"dayflow/internal/cache"
	"dayflow/internal/datetime"
	"dayflow/internal/schedule"
)

// Commander is the slice of the schedule service the coordinator issues
// commands through.
type Commander interface {
	Start(ctx context.Context, id int64, at datetime.ZonedDateTime) error
	Suspend(ctx context.Context, id int64, at datetime.ZonedDateTime) error
	Complete(ctx context.Context, id int64, at datetime.ZonedDateTime) error
	Cancel(ctx context.Context, id int64) error
}

// Capabilities are the lifecycle actions currently legal for a schedule,
// derived purely from its cached state.
type Capabilities struct {
	Start    bool
	Pause    bool
	Complete bool
	Cancel   bool
	Known    bool // false when the schedule is not cached at all
}

// Coordinator applies the lifecycle state machine. No state is ever changed
// locally before the remote command succeeds, so a failed command needs no
// rollback. At most one transition per schedule id is in flight at a time.
type Coordinator struct {
	store *cache.Store
	svc   Commander
	zone  datetime.Zone

	// Now supplies the transition instant; tests override it. Defaults to
	// time.Now.
	Now func() time.Time

	mu       sync.Mutex
	inFlight map[int64]bool
}

// NewCoordinator builds a coordinator over the given store and service.
func NewCoordinator(store *cache.Store, svc Commander, zone datetime.Zone) *Coordinator {
	return &Coordinator{
		store:    store,
		svc:      svc,
		zone:     zone,
		inFlight: make(map[int64]bool),
	}
}

// Can reports which transitions are legal for the schedule right now.
func (c *Coordinator) Can(id int64) Capabilities {
	sum, found := c.store.Schedule(id)
	if !found {
		return Capabilities{}
	}
	return Capabilities{
		Start:    sum.State.CanStart(),
		Pause:    sum.State.CanPause(),
		Complete: sum.State.CanComplete(),
		Cancel:   sum.State.CanCancel(),
		Known:    true,
	}
}

// Busy reports whether a transition for the schedule is currently in flight.
func (c *Coordinator) Busy(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[id]
}

// Start moves a pending or suspended schedule into progress.
func (c *Coordinator) Start(ctx context.Context, id int64) error {
	return c.transition(ctx, id, schedule.State.CanStart, schedule.StateInProgress,
		func(ctx context.Context, at datetime.ZonedDateTime) error {
			return c.svc.Start(ctx, id, at)
		})
}

// Pause suspends an in-progress schedule.
func (c *Coordinator) Pause(ctx context.Context, id int64) error {
	return c.transition(ctx, id, schedule.State.CanPause, schedule.StateSuspended,
		func(ctx context.Context, at datetime.ZonedDateTime) error {
			return c.svc.Suspend(ctx, id, at)
		})
}

// Complete finishes an in-progress schedule.
func (c *Coordinator) Complete(ctx context.Context, id int64) error {
	return c.transition(ctx, id, schedule.State.CanComplete, schedule.StateCompleted,
		func(ctx context.Context, at datetime.ZonedDateTime) error {
			return c.svc.Complete(ctx, id, at)
		})
}

// Cancel abandons a pending or in-progress schedule.
func (c *Coordinator) Cancel(ctx context.Context, id int64) error {
	return c.transition(ctx, id, schedule.State.CanCancel, schedule.StateCanceled,
		func(ctx context.Context, _ datetime.ZonedDateTime) error {
			return c.svc.Cancel(ctx, id)
		})
}

// transition runs the shared algorithm: guard, in-flight check, remote
// command, commit. A failed guard or an already-running transition is a
// silent no-op; the state machine treats those as stale UI, not errors.
func (c *Coordinator) transition(
	ctx context.Context,
	id int64,
	guard func(schedule.State) bool,
	next schedule.State,
	command func(context.Context, datetime.ZonedDateTime) error,
) error {
	sum, found := c.store.Schedule(id)
	if !found || !guard(sum.State) {
		return nil
	}

	if !c.begin(id) {
		return nil
	}
	defer c.end(id)

	at := c.zone.Wire(c.nowFunc()())
	if err := command(ctx, at); err != nil {
		return err
	}

	c.store.UpdateScheduleState(id, next)
	return nil
}

func (c *Coordinator) begin(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[id] {
		return false
	}
	c.inFlight[id] = true
	return true
}

func (c *Coordinator) end(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
}

func (c *Coordinator) nowFunc() func() time.Time {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}
