package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"dayflow/internal/cache"
	"dayflow/internal/datetime"
	"dayflow/internal/schedule"
	"dayflow/internal/stats"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"eight failures capped", 8, 5 * time.Minute},
		{"many failures capped", 20, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 40; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeService struct {
	lists       map[string][]schedule.Summary
	details     map[int64]schedule.Summary
	activeID    int64
	activeSet   bool
	listErr     error
	detailCalls int
}

func (f *fakeService) ListByDate(_ context.Context, key string) ([]schedule.Summary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[key], nil
}

func (f *fakeService) Detail(_ context.Context, id int64) (*schedule.Summary, error) {
	f.detailCalls++
	sum, ok := f.details[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &sum, nil
}

func (f *fakeService) Create(context.Context, schedule.Request) (*schedule.Summary, error) {
	return nil, errors.New("unused")
}

func (f *fakeService) Update(context.Context, int64, schedule.Patch) (*schedule.Summary, error) {
	return nil, errors.New("unused")
}

func (f *fakeService) Delete(context.Context, int64) error { return errors.New("unused") }

func (f *fakeService) Start(context.Context, int64, datetime.ZonedDateTime) error {
	return errors.New("unused")
}

func (f *fakeService) Suspend(context.Context, int64, datetime.ZonedDateTime) error {
	return errors.New("unused")
}

func (f *fakeService) Complete(context.Context, int64, datetime.ZonedDateTime) error {
	return errors.New("unused")
}

func (f *fakeService) Cancel(context.Context, int64) error { return errors.New("unused") }

func (f *fakeService) ActiveID(context.Context) (int64, bool, error) {
	return f.activeID, f.activeSet, nil
}

func (f *fakeService) WeeklyStatistics(context.Context, datetime.ZonedDateTime) (*stats.Weekly, error) {
	return nil, errors.New("unused")
}

func todaySummary(id int64, zone datetime.Zone, state schedule.State) schedule.Summary {
	day := zone.DateKey(time.Now())
	return schedule.Summary{
		ID:         id,
		Title:      "focus block",
		Date:       datetime.ZonedDateTime{DateTime: day + "T09:00:00", ZoneID: zone.ID()},
		Deadline:   datetime.ZonedDateTime{DateTime: day + "T10:00:00", ZoneID: zone.ID()},
		Importance: 4,
		Urgency:    6,
		State:      state,
	}
}

func TestRefresh_PopulatesTodayAndActive(t *testing.T) {
	zone := datetime.MustLoadZone("Asia/Seoul")
	key := zone.DateKey(time.Now())

	svc := &fakeService{
		lists: map[string][]schedule.Summary{
			key: {todaySummary(1, zone, schedule.StateInProgress)},
		},
		activeID:  1,
		activeSet: true,
	}
	store := cache.NewStore(zone)

	if err := refresh(context.Background(), store, svc, zone); err != nil {
		t.Fatalf("refresh error: %v", err)
	}

	list, ok := store.DaySchedules(key)
	if !ok || len(list) != 1 {
		t.Fatalf("day list = %v, %v; want today's schedules cached", list, ok)
	}
	active, ok := store.ActiveSchedule()
	if !ok || active.ID != 1 {
		t.Fatalf("active = %v, %v; want schedule 1", active, ok)
	}
	if svc.detailCalls != 0 {
		t.Fatalf("detail calls = %d, want 0 for an already cached active id", svc.detailCalls)
	}
}

func TestRefresh_FetchesDetailForUncachedActive(t *testing.T) {
	zone := datetime.MustLoadZone("Asia/Seoul")
	key := zone.DateKey(time.Now())

	// The remote reports an active schedule that lives on another day, so
	// today's list alone cannot resolve it.
	other := todaySummary(7, zone, schedule.StateSuspended)
	other.Date = datetime.ZonedDateTime{DateTime: "2024-01-02T09:00:00", ZoneID: zone.ID()}
	other.Deadline = datetime.ZonedDateTime{DateTime: "2024-01-02T10:00:00", ZoneID: zone.ID()}

	svc := &fakeService{
		lists:     map[string][]schedule.Summary{key: {}},
		details:   map[int64]schedule.Summary{7: other},
		activeID:  7,
		activeSet: true,
	}
	store := cache.NewStore(zone)

	if err := refresh(context.Background(), store, svc, zone); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if svc.detailCalls != 1 {
		t.Fatalf("detail calls = %d, want 1", svc.detailCalls)
	}
	active, ok := store.ActiveSchedule()
	if !ok || active.ID != 7 {
		t.Fatalf("active = %v, %v; want schedule 7 adopted via detail fetch", active, ok)
	}
}

func TestRefresh_ClearsActiveWhenRemoteReportsNone(t *testing.T) {
	zone := datetime.MustLoadZone("Asia/Seoul")
	key := zone.DateKey(time.Now())

	svc := &fakeService{
		lists: map[string][]schedule.Summary{
			key: {todaySummary(1, zone, schedule.StateInProgress)},
		},
		activeID:  1,
		activeSet: true,
	}
	store := cache.NewStore(zone)
	if err := refresh(context.Background(), store, svc, zone); err != nil {
		t.Fatalf("refresh error: %v", err)
	}

	// Remote no longer reports an active schedule; the cached record itself
	// also left the active states.
	svc.activeSet = false
	svc.lists[key] = []schedule.Summary{todaySummary(1, zone, schedule.StateCompleted)}
	if err := refresh(context.Background(), store, svc, zone); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if _, ok := store.ActiveSchedule(); ok {
		t.Fatal("active reference survived a remote clear")
	}
}

func TestRefresh_FailureLeavesCacheUntouched(t *testing.T) {
	zone := datetime.MustLoadZone("Asia/Seoul")
	key := zone.DateKey(time.Now())

	store := cache.NewStore(zone)
	store.SetDaySchedules(key, []schedule.Summary{todaySummary(1, zone, schedule.StatePending)})

	svc := &fakeService{listErr: errors.New("network down")}
	if err := refresh(context.Background(), store, svc, zone); err == nil {
		t.Fatal("refresh succeeded, want error")
	}

	list, ok := store.DaySchedules(key)
	if !ok || len(list) != 1 {
		t.Fatalf("day list = %v, %v; want prior cache preserved", list, ok)
	}
}
