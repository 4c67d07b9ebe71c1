package schedule

import (
	"testing"

	"dayflow/internal/datetime"
)

func sample(id int64, state State) Summary {
	return Summary{
		ID:          id,
		Title:       "write weekly report",
		Description: "summarize sprint outcomes",
		Date:        datetime.ZonedDateTime{DateTime: "2024-05-01T09:00:00", ZoneID: "Asia/Seoul"},
		Deadline:    datetime.ZonedDateTime{DateTime: "2024-05-01T11:00:00", ZoneID: "Asia/Seoul"},
		Importance:  5,
		Urgency:     4,
		TaskType:    TaskDeepWork,
		State:       state,
	}
}

func TestEqualSummariesIdenticalLists(t *testing.T) {
	a := []Summary{sample(1, StatePending), sample(2, StateCompleted)}
	b := []Summary{sample(1, StatePending), sample(2, StateCompleted)}
	if !EqualSummaries(a, b) {
		t.Fatal("EqualSummaries = false for identical lists")
	}
	if !EqualSummaries(nil, nil) {
		t.Fatal("EqualSummaries(nil, nil) = false")
	}
	if !EqualSummaries([]Summary{}, nil) {
		t.Fatal("EqualSummaries(empty, nil) = false, want true (same length)")
	}
}

func TestEqualSummariesSingleFieldDifference(t *testing.T) {
	base := sample(1, StatePending)

	mutations := map[string]func(*Summary){
		"id":            func(s *Summary) { s.ID = 2 },
		"title":         func(s *Summary) { s.Title = "changed" },
		"description":   func(s *Summary) { s.Description = "changed" },
		"date wall":     func(s *Summary) { s.Date.DateTime = "2024-05-01T09:30:00" },
		"date zone":     func(s *Summary) { s.Date.ZoneID = "America/New_York" },
		"deadline wall": func(s *Summary) { s.Deadline.DateTime = "2024-05-01T12:00:00" },
		"deadline zone": func(s *Summary) { s.Deadline.ZoneID = "Europe/London" },
		"importance":    func(s *Summary) { s.Importance = 9 },
		"urgency":       func(s *Summary) { s.Urgency = 9 },
		"taskType":      func(s *Summary) { s.TaskType = TaskAdminTask },
		"state":         func(s *Summary) { s.State = StateInProgress },
	}

	for name, mutate := range mutations {
		other := base
		mutate(&other)
		if EqualSummaries([]Summary{base}, []Summary{other}) {
			t.Fatalf("EqualSummaries = true despite differing %s", name)
		}
	}
}

func TestEqualSummariesLengthMismatch(t *testing.T) {
	if EqualSummaries([]Summary{sample(1, StatePending)}, nil) {
		t.Fatal("EqualSummaries = true for different lengths")
	}
}

func TestDateEqualityIgnoresDerivedKeys(t *testing.T) {
	// Same instant, different zones: these collapse to different wall clocks
	// and must compare unequal even if their calendar keys matched.
	a := sample(1, StatePending)
	b := sample(1, StatePending)
	b.Date = datetime.ZonedDateTime{DateTime: "2024-05-01T09:00:00", ZoneID: "Asia/Tokyo"}
	if a.Equal(b) {
		t.Fatal("Equal = true despite differing date zone ids")
	}
}

func TestStateGuards(t *testing.T) {
	all := []State{StatePending, StateInProgress, StateSuspended, StateCompleted, StateCanceled}

	wantStart := map[State]bool{StatePending: true, StateSuspended: true}
	wantPause := map[State]bool{StateInProgress: true}
	wantComplete := map[State]bool{StateInProgress: true}
	wantCancel := map[State]bool{StatePending: true, StateInProgress: true}

	for _, s := range all {
		if got := s.CanStart(); got != wantStart[s] {
			t.Errorf("CanStart(%s) = %v, want %v", s, got, wantStart[s])
		}
		if got := s.CanPause(); got != wantPause[s] {
			t.Errorf("CanPause(%s) = %v, want %v", s, got, wantPause[s])
		}
		if got := s.CanComplete(); got != wantComplete[s] {
			t.Errorf("CanComplete(%s) = %v, want %v", s, got, wantComplete[s])
		}
		if got := s.CanCancel(); got != wantCancel[s] {
			t.Errorf("CanCancel(%s) = %v, want %v", s, got, wantCancel[s])
		}
	}
}

func TestStateActive(t *testing.T) {
	if !StateInProgress.Active() || !StateSuspended.Active() {
		t.Fatal("IN_PROGRESS and SUSPENDED must be active states")
	}
	for _, s := range []State{StatePending, StateCompleted, StateCanceled} {
		if s.Active() {
			t.Fatalf("%s.Active() = true, want false", s)
		}
	}
}

func TestSortByDate(t *testing.T) {
	zone := datetime.MustLoadZone("Asia/Seoul")

	early := sample(3, StatePending)
	early.Date.DateTime = "2024-05-01T08:00:00"
	late := sample(1, StatePending)
	late.Date.DateTime = "2024-05-01T15:00:00"
	tiedLow := sample(2, StatePending)
	tiedHigh := sample(5, StatePending)

	list := []Summary{late, tiedHigh, early, tiedLow}
	SortByDate(list, zone)

	gotIDs := []int64{list[0].ID, list[1].ID, list[2].ID, list[3].ID}
	wantIDs := []int64{3, 2, 5, 1}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("SortByDate order = %v, want %v", gotIDs, wantIDs)
		}
	}
}
