// Package views binds read paths of the schedule cache to independent view
// surfaces. Each adapter re-derives its local snapshot only when the
// underlying cache slice genuinely changed, fetches from the schedule
// service only when its slice is absent, and writes results back through the
// store's mutation methods rather than touching cached data directly.
package views

import (
	"context"
	"sync"

	"dayflow/internal/cache"
	"dayflow/internal/schedule"
)

// ListService is the fetch path a day-list adapter needs.
type ListService interface {
	ListByDate(ctx context.Context, dateKey string) ([]schedule.Summary, error)
}

// DayList projects the cached schedule list for one calendar day.
type DayList struct {
	store *cache.Store
	svc   ListService
	key   string

	mu        sync.Mutex
	schedules []schedule.Summary
	loading   bool
	err       error
	closed    bool

	unsubscribe func()
}

// NewDayList binds an adapter to the given day key. The adapter starts in
// the loading state until Load runs.
func NewDayList(store *cache.Store, svc ListService, key string) *DayList {
	d := &DayList{
		store:   store,
		svc:     svc,
		key:     key,
		loading: true,
	}
	d.unsubscribe = store.Subscribe(d.onEvent)
	return d
}

// onEvent re-derives the local snapshot when the adapter's day changed.
func (d *DayList) onEvent(ev cache.Event) {
	if ev.Kind != cache.EventDayList || ev.DateKey != d.key {
		return
	}
	cached, ok := d.store.DaySchedules(d.key)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || schedule.EqualSummaries(cached, d.schedules) {
		return
	}
	d.schedules = cached
	d.loading = false
}

// Load populates the snapshot, fetching from the service only when the
// cache has no entry for the day. A fetch error is recorded as a retryable
// view state; the cache keeps its prior condition.
func (d *DayList) Load(ctx context.Context) error {
	if cached, ok := d.store.DaySchedules(d.key); ok {
		d.apply(cached)
		return nil
	}
	return d.fetch(ctx)
}

// Refresh re-fetches the day unconditionally.
func (d *DayList) Refresh(ctx context.Context) error {
	return d.fetch(ctx)
}

func (d *DayList) fetch(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.err = nil
	d.mu.Unlock()

	list, err := d.svc.ListByDate(ctx, d.key)
	if err != nil {
		d.mu.Lock()
		if !d.closed {
			d.loading = false
			d.err = err
		}
		d.mu.Unlock()
		return err
	}

	// The store write lands even when the adapter was closed mid-fetch;
	// only the local presentation is discarded.
	d.store.SetDaySchedules(d.key, list)
	d.apply(list)
	return nil
}

func (d *DayList) apply(list []schedule.Summary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.schedules = list
	d.loading = false
	d.err = nil
}

// Snapshot returns the current view state: the schedules, whether a load is
// pending, and the last fetch error if any.
func (d *DayList) Snapshot() ([]schedule.Summary, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.schedules, d.loading, d.err
}

// Key returns the day key this adapter is bound to.
func (d *DayList) Key() string { return d.key }

// Close detaches the adapter. A fetch still in flight will no longer touch
// the local snapshot, though its cache write proceeds normally.
func (d *DayList) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	if d.unsubscribe != nil {
		d.unsubscribe()
	}
}
