// Package cache implements the process-wide schedule store: day-keyed
// schedule lists, the single active-schedule reference, and change
// notification with structural-equality suppression.
package cache

import (
	"sync"

	"dayflow/internal/datetime"
	"dayflow/internal/schedule"
)

// EventKind discriminates store change notifications.
type EventKind int

const (
	// EventDayList signals that the list for Event.DateKey changed.
	EventDayList EventKind = iota
	// EventSchedule signals that the schedule with Event.ID changed.
	EventSchedule
	// EventActive signals that the active-schedule reference changed.
	EventActive
)

// Event describes one observable store change.
type Event struct {
	Kind    EventKind
	DateKey string
	ID      int64
}

type subscriber struct {
	id int64
	fn func(Event)
}

// Store is the single mutable shared resource of the planner core. All views
// read through it and mutate only through its methods; every mutation is
// applied atomically and fans out to subscribers only when the stored value
// genuinely changed.
//
// The zero Store is not usable; construct with NewStore.
type Store struct {
	mu       sync.Mutex
	zone     datetime.Zone
	days     map[string][]schedule.Summary
	activeID int64 // 0 means no active schedule
	subs     []subscriber
	nextSub  int64
}

// NewStore builds an empty store governed by the given zone.
func NewStore(zone datetime.Zone) *Store {
	return &Store{
		zone: zone,
		days: make(map[string][]schedule.Summary),
	}
}

// Subscribe registers a listener for store changes and returns a cancel
// function. Listeners run after the mutation is fully applied, outside the
// store lock, in registration order.
func (s *Store) Subscribe(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// DaySchedules returns a copy of the cached list for a day key and whether
// the day is present at all. An empty present list means "fetched, nothing
// scheduled"; absent means the caller should fetch.
func (s *Store) DaySchedules(key string) ([]schedule.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.days[key]
	if !ok {
		return nil, false
	}
	return cloneList(list), true
}

// SetDaySchedules replaces the cached list for a day. The list is always
// stored, but subscribers are notified only when it differs structurally
// from the prior value, so background refreshes that return unchanged data
// do not cause downstream re-renders.
func (s *Store) SetDaySchedules(key string, list []schedule.Summary) {
	s.mu.Lock()

	prev, hadDay := s.days[key]
	next := cloneList(list)
	if next == nil {
		next = []schedule.Summary{}
	}
	s.days[key] = next

	var events []Event
	if !hadDay || !schedule.EqualSummaries(next, prev) {
		events = append(events, Event{Kind: EventDayList, DateKey: key})
	}
	events = s.rederiveActiveLocked(events)

	subs := s.subscribersLocked()
	s.mu.Unlock()

	deliver(subs, events)
}

// Schedule returns a copy of the cached schedule with the given id,
// searching across all day entries.
func (s *Store) Schedule(id int64) (schedule.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, sum, found := s.findLocked(id)
	return sum, found
}

// UpsertSchedule inserts or updates a single schedule by id. When the
// schedule's date moved to a different calendar day it is removed from its
// old day entry and inserted into the new one. Returns an error only when
// the schedule's date cannot be keyed.
func (s *Store) UpsertSchedule(sum schedule.Summary) error {
	newKey, err := sum.Date.Key(s.zone)
	if err != nil {
		return err
	}

	s.mu.Lock()

	var events []Event
	changed := false

	oldKey, _, found := s.findLocked(sum.ID)
	if found && oldKey != newKey {
		s.days[oldKey] = removeByID(s.days[oldKey], sum.ID)
		events = append(events, Event{Kind: EventDayList, DateKey: oldKey})
		changed = true
	}

	entry := s.days[newKey]
	replaced := false
	for i := range entry {
		if entry[i].ID == sum.ID {
			if !entry[i].Equal(sum) {
				entry[i] = sum
				changed = true
			}
			replaced = true
			break
		}
	}
	if !replaced {
		entry = append(entry, sum)
		changed = true
	}
	if changed {
		schedule.SortByDate(entry, s.zone)
		s.days[newKey] = entry
		events = append(events,
			Event{Kind: EventDayList, DateKey: newKey},
			Event{Kind: EventSchedule, ID: sum.ID},
		)
	}
	events = s.rederiveActiveLocked(events)

	subs := s.subscribersLocked()
	s.mu.Unlock()

	deliver(subs, events)
	return nil
}

// RemoveSchedule deletes a schedule from whichever day entry holds it, for
// example after a successful delete command. A dangling active reference is
// cleared in the same step.
func (s *Store) RemoveSchedule(id int64) {
	s.mu.Lock()

	var events []Event
	if key, _, found := s.findLocked(id); found {
		s.days[key] = removeByID(s.days[key], id)
		events = append(events,
			Event{Kind: EventDayList, DateKey: key},
			Event{Kind: EventSchedule, ID: id},
		)
	}
	events = s.rederiveActiveLocked(events)

	subs := s.subscribersLocked()
	s.mu.Unlock()

	deliver(subs, events)
}

// UpdateScheduleState mutates a schedule's lifecycle state in place and
// re-derives the active reference in the same critical section, so no
// subscriber can observe two active schedules or an active reference
// pointing at a finished one.
func (s *Store) UpdateScheduleState(id int64, newState schedule.State) {
	s.mu.Lock()

	var events []Event
	key, prior, found := s.findLocked(id)
	if found && prior.State != newState {
		entry := s.days[key]
		for i := range entry {
			if entry[i].ID == id {
				entry[i].State = newState
				break
			}
		}
		events = append(events,
			Event{Kind: EventDayList, DateKey: key},
			Event{Kind: EventSchedule, ID: id},
		)
	}

	if found {
		if newState.Active() {
			if s.activeID != id {
				s.activeID = id
				events = append(events, Event{Kind: EventActive})
			}
		} else if s.activeID == id {
			s.activeID = 0
			events = append(events, Event{Kind: EventActive})
		}
	}
	events = s.rederiveActiveLocked(events)

	subs := s.subscribersLocked()
	s.mu.Unlock()

	deliver(subs, events)
}

// ActiveSchedule resolves the active reference to its summary. Reports
// false when no schedule is currently in progress or suspended.
func (s *Store) ActiveSchedule() (schedule.Summary, bool) {
	s.mu.Lock()

	events := s.rederiveActiveLocked(nil)
	var (
		sum schedule.Summary
		ok  bool
	)
	if s.activeID != 0 {
		_, sum, ok = s.findLocked(s.activeID)
	}

	subs := s.subscribersLocked()
	s.mu.Unlock()

	deliver(subs, events)
	return sum, ok
}

// SetActiveID reconciles the active reference against the server's answer
// (the /now endpoint). Non-positive ids clear the reference. A positive id
// is adopted only when it resolves to a cached schedule in an active state;
// the reference must stay resolvable or null.
func (s *Store) SetActiveID(id int64) {
	s.mu.Lock()

	var events []Event
	switch {
	case id <= 0:
		if s.activeID != 0 {
			s.activeID = 0
			events = append(events, Event{Kind: EventActive})
		}
	default:
		if _, sum, found := s.findLocked(id); found && sum.State.Active() && s.activeID != id {
			s.activeID = id
			events = append(events, Event{Kind: EventActive})
		}
	}
	events = s.rederiveActiveLocked(events)

	subs := s.subscribersLocked()
	s.mu.Unlock()

	deliver(subs, events)
}

// rederiveActiveLocked enforces the active-reference invariant after any
// mutation: the reference resolves to a cached schedule in an active state,
// or is null. When the reference is null and exactly one cached schedule is
// in an active state, it is adopted. Must be called with the lock held;
// returns events extended with an EventActive when the reference moved.
func (s *Store) rederiveActiveLocked(events []Event) []Event {
	if s.activeID != 0 {
		_, sum, found := s.findLocked(s.activeID)
		if found && sum.State.Active() {
			return events
		}
		s.activeID = 0
		events = append(events, Event{Kind: EventActive})
	}

	var candidate int64
	count := 0
	for _, entry := range s.days {
		for _, sum := range entry {
			if sum.State.Active() {
				candidate = sum.ID
				count++
			}
		}
	}
	if count == 1 {
		s.activeID = candidate
		events = append(events, Event{Kind: EventActive})
	}
	return events
}

// findLocked locates a schedule by id across all day entries.
func (s *Store) findLocked(id int64) (key string, sum schedule.Summary, found bool) {
	for k, entry := range s.days {
		for _, candidate := range entry {
			if candidate.ID == id {
				return k, candidate, true
			}
		}
	}
	return "", schedule.Summary{}, false
}

func (s *Store) subscribersLocked() []subscriber {
	if len(s.subs) == 0 {
		return nil
	}
	dup := make([]subscriber, len(s.subs))
	copy(dup, s.subs)
	return dup
}

func deliver(subs []subscriber, events []Event) {
	for _, ev := range events {
		for _, sub := range subs {
			sub.fn(ev)
		}
	}
}

func cloneList(list []schedule.Summary) []schedule.Summary {
	if list == nil {
		return nil
	}
	dup := make([]schedule.Summary, len(list))
	copy(dup, list)
	return dup
}

func removeByID(list []schedule.Summary, id int64) []schedule.Summary {
	out := list[:0]
	for _, sum := range list {
		if sum.ID != id {
			out = append(out, sum)
		}
	}
	return out
}
