// Package schedule defines the planner's domain types: schedule summaries,
// the lifecycle state machine, and request payloads.
package schedule

import (
	"sort"

	"dayflow/internal/datetime"
)

// State is a schedule's position in its lifecycle.
type State string

const (
	StatePending    State = "PENDING"
	StateInProgress State = "IN_PROGRESS"
	StateSuspended  State = "SUSPENDED"
	StateCompleted  State = "COMPLETED"
	StateCanceled   State = "CANCELED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateInProgress, StateSuspended, StateCompleted, StateCanceled:
		return true
	}
	return false
}

// Active reports whether a schedule in this state occupies the single
// active slot (currently running or paused mid-run).
func (s State) Active() bool {
	return s == StateInProgress || s == StateSuspended
}

// CanStart reports whether the start transition is legal from s.
func (s State) CanStart() bool {
	return s == StatePending || s == StateSuspended
}

// CanPause reports whether the pause transition is legal from s.
func (s State) CanPause() bool {
	return s == StateInProgress
}

// CanComplete reports whether the complete transition is legal from s.
func (s State) CanComplete() bool {
	return s == StateInProgress
}

// CanCancel reports whether the cancel transition is legal from s.
func (s State) CanCancel() bool {
	return s == StatePending || s == StateInProgress
}

// TaskType classifies the kind of work a schedule represents. The empty
// value means unclassified.
type TaskType string

const (
	TaskDeepWork  TaskType = "DEEP_WORK"
	TaskQuickTask TaskType = "QUICK_TASK"
	TaskAdminTask TaskType = "ADMIN_TASK"
)

// Valid reports whether t is a known task type or unset.
func (t TaskType) Valid() bool {
	switch t {
	case "", TaskDeepWork, TaskQuickTask, TaskAdminTask:
		return true
	}
	return false
}

// Summary is one calendar-visible schedule occurrence as returned by the
// schedule service. Date and Deadline carry explicit zone ids; Deadline is
// never before Date.
type Summary struct {
	ID          int64                  `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Date        datetime.ZonedDateTime `json:"date"`
	Deadline    datetime.ZonedDateTime `json:"deadline"`
	Importance  int                    `json:"importance"`
	Urgency     int                    `json:"urgency"`
	TaskType    TaskType               `json:"taskType,omitempty"`
	State       State                  `json:"state"`
}

// Equal reports field-wise equality. Date and deadline compare both the
// wall-clock value and the zone id, never derived calendar keys.
func (s Summary) Equal(o Summary) bool {
	return s.ID == o.ID &&
		s.Title == o.Title &&
		s.Description == o.Description &&
		s.Date == o.Date &&
		s.Deadline == o.Deadline &&
		s.Importance == o.Importance &&
		s.Urgency == o.Urgency &&
		s.TaskType == o.TaskType &&
		s.State == o.State
}

// EqualSummaries reports whether two day lists are structurally identical:
// same length, field-wise equal at every ordinal position. The cache uses it
// to suppress notifications for refreshes that returned unchanged data.
func EqualSummaries(next, prev []Summary) bool {
	if len(next) != len(prev) {
		return false
	}
	for i := range next {
		if !next[i].Equal(prev[i]) {
			return false
		}
	}
	return true
}

// SortByDate orders a day list by schedule date, breaking ties by id, the
// same ordering the service returns for date-range fetches. Entries whose
// date fails to resolve sort last.
func SortByDate(list []Summary, zone datetime.Zone) {
	sort.SliceStable(list, func(i, j int) bool {
		ti, erri := list[i].Date.Resolve(zone)
		tj, errj := list[j].Date.Resolve(zone)
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return list[i].ID < list[j].ID
	})
}
