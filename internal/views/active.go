package views

import (
	"sync"

	"dayflow/internal/cache"
	"dayflow/internal/schedule"
)

// Active projects the single active schedule (in progress or suspended).
// It re-derives only when the resolved summary genuinely changed, so the
// mini-player does not repaint on unrelated cache traffic.
type Active struct {
	store *cache.Store

	mu     sync.Mutex
	sum    schedule.Summary
	has    bool
	closed bool

	unsubscribe func()
}

// NewActive binds the active-schedule projection to the store.
func NewActive(store *cache.Store) *Active {
	a := &Active{store: store}
	a.sum, a.has = store.ActiveSchedule()
	a.unsubscribe = store.Subscribe(a.onEvent)
	return a
}

func (a *Active) onEvent(ev cache.Event) {
	// The active summary can change through the reference moving or through
	// the referenced schedule's own fields changing.
	if ev.Kind != cache.EventActive && ev.Kind != cache.EventSchedule {
		return
	}
	sum, has := a.store.ActiveSchedule()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if has == a.has && (!has || sum.Equal(a.sum)) {
		return
	}
	a.sum = sum
	a.has = has
}

// Snapshot returns the active schedule and whether one exists.
func (a *Active) Snapshot() (schedule.Summary, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sum, a.has
}

// Close detaches the projection from the store.
func (a *Active) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}
