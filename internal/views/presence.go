package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"dayflow/internal/cache"
	"dayflow/internal/datetime"
)

// WeekPresence reports, for each day of one week, whether at least one
// schedule exists. The weekly strip uses it to render presence dots.
// Cached days are answered from the store; missing days are fetched and the
// results written back so a later day-list adapter finds them.
type WeekPresence struct {
	store *cache.Store
	svc   ListService
	keys  []string

	mu       sync.Mutex
	presence map[string]bool
	loading  bool
	err      error
	closed   bool

	unsubscribe func()
}

// NewWeekPresence binds a presence adapter to the week starting at
// weekStart, keyed in the governing zone.
func NewWeekPresence(store *cache.Store, svc ListService, zone datetime.Zone, weekStart time.Time) *WeekPresence {
	days := datetime.WeekDays(zone.WeekStart(weekStart))
	keys := make([]string, len(days))
	for i, day := range days {
		keys[i] = zone.DateKey(day)
	}
	w := &WeekPresence{
		store:    store,
		svc:      svc,
		keys:     keys,
		presence: make(map[string]bool, len(keys)),
		loading:  true,
	}
	w.unsubscribe = store.Subscribe(w.onEvent)
	return w
}

func (w *WeekPresence) onEvent(ev cache.Event) {
	if ev.Kind != cache.EventDayList {
		return
	}
	for _, key := range w.keys {
		if key != ev.DateKey {
			continue
		}
		list, ok := w.store.DaySchedules(key)
		if !ok {
			return
		}
		w.mu.Lock()
		if !w.closed {
			w.presence[key] = len(list) > 0
		}
		w.mu.Unlock()
		return
	}
}

// Load fills the presence map, fetching only days the cache has never seen.
// Days that fail to fetch are reported absent; their errors are joined and
// returned as one retryable state.
func (w *WeekPresence) Load(ctx context.Context) error {
	w.mu.Lock()
	w.loading = true
	w.err = nil
	w.mu.Unlock()

	var firstErr error
	for _, key := range w.keys {
		list, ok := w.store.DaySchedules(key)
		if !ok {
			fetched, err := w.svc.ListByDate(ctx, key)
			if err != nil {
				firstErr = errors.Join(firstErr, err)
				w.setPresence(key, false)
				continue
			}
			w.store.SetDaySchedules(key, fetched)
			list = fetched
		}
		w.setPresence(key, len(list) > 0)
	}

	w.mu.Lock()
	if !w.closed {
		w.loading = false
		w.err = firstErr
	}
	w.mu.Unlock()
	return firstErr
}

func (w *WeekPresence) setPresence(key string, present bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.presence[key] = present
}

// Keys returns the seven day keys of the bound week, Monday first.
func (w *WeekPresence) Keys() []string {
	dup := make([]string, len(w.keys))
	copy(dup, w.keys)
	return dup
}

// Snapshot returns a copy of the presence map plus the loading and error
// state.
func (w *WeekPresence) Snapshot() (map[string]bool, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	dup := make(map[string]bool, len(w.presence))
	for k, v := range w.presence {
		dup[k] = v
	}
	return dup, w.loading, w.err
}

// Close detaches the adapter from the store.
func (w *WeekPresence) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
}
