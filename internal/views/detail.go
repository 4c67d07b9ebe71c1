package views

import (
	"context"
	"sync"

	"dayflow/internal/cache"
	"dayflow/internal/schedule"
)

// DetailService is the fetch path a detail adapter needs.
type DetailService interface {
	Detail(ctx context.Context, id int64) (*schedule.Summary, error)
}

// Detail projects one schedule by id. Loading always re-fetches so the
// detail view shows fresh data, and the result is written back into the
// cache so every other view observes the same record.
type Detail struct {
	store *cache.Store
	svc   DetailService
	id    int64

	mu      sync.Mutex
	sum     schedule.Summary
	has     bool
	loading bool
	err     error
	closed  bool

	unsubscribe func()
}

// NewDetail binds a detail adapter to a schedule id, seeding the snapshot
// from the cache when the schedule is already known.
func NewDetail(store *cache.Store, svc DetailService, id int64) *Detail {
	d := &Detail{
		store:   store,
		svc:     svc,
		id:      id,
		loading: true,
	}
	if sum, ok := store.Schedule(id); ok {
		d.sum = sum
		d.has = true
	}
	d.unsubscribe = store.Subscribe(d.onEvent)
	return d
}

func (d *Detail) onEvent(ev cache.Event) {
	if ev.Kind != cache.EventSchedule || ev.ID != d.id {
		return
	}
	sum, ok := d.store.Schedule(d.id)
	if !ok {
		d.mu.Lock()
		d.has = false
		d.mu.Unlock()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || (d.has && d.sum.Equal(sum)) {
		return
	}
	d.sum = sum
	d.has = true
}

// Load fetches the schedule detail and commits it to the cache.
func (d *Detail) Load(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.err = nil
	d.mu.Unlock()

	sum, err := d.svc.Detail(ctx, d.id)
	if err != nil {
		d.mu.Lock()
		if !d.closed {
			d.loading = false
			d.err = err
		}
		d.mu.Unlock()
		return err
	}

	// Cache write lands regardless of adapter liveness.
	if err := d.store.UpsertSchedule(*sum); err != nil {
		d.mu.Lock()
		if !d.closed {
			d.loading = false
			d.err = err
		}
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	if !d.closed {
		d.sum = *sum
		d.has = true
		d.loading = false
		d.err = nil
	}
	d.mu.Unlock()
	return nil
}

// ID returns the schedule id this adapter is bound to.
func (d *Detail) ID() int64 { return d.id }

// Snapshot returns the current detail state.
func (d *Detail) Snapshot() (schedule.Summary, bool, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sum, d.has, d.loading, d.err
}

// Close detaches the adapter from the store.
func (d *Detail) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	if d.unsubscribe != nil {
		d.unsubscribe()
	}
}
