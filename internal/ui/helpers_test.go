package ui

import (
	"testing"

	"dayflow/internal/datetime"
	"dayflow/internal/lifecycle"
	"dayflow/internal/schedule"
)

func TestStateBadge(t *testing.T) {
	cases := []struct {
		state schedule.State
		want  string
	}{
		{schedule.StatePending, "todo"},
		{schedule.StateInProgress, "running"},
		{schedule.StateSuspended, "paused"},
		{schedule.StateCompleted, "done"},
		{schedule.StateCanceled, "canceled"},
	}
	for _, tc := range cases {
		if got := stateBadge(tc.state); got != tc.want {
			t.Fatalf("stateBadge(%s) = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestTimeRangeLabel(t *testing.T) {
	zone := datetime.MustLoadZone("Asia/Seoul")
	sum := schedule.Summary{
		Date:     datetime.ZonedDateTime{DateTime: "2024-05-01T09:00:00", ZoneID: "Asia/Seoul"},
		Deadline: datetime.ZonedDateTime{DateTime: "2024-05-01T10:30:00", ZoneID: "Asia/Seoul"},
	}
	if got := timeRangeLabel(sum, zone); got != "09:00 - 10:30" {
		t.Fatalf("timeRangeLabel = %q, want %q", got, "09:00 - 10:30")
	}

	// An instant carrying its own zone renders in that zone, not the
	// governing one.
	sum.Date = datetime.ZonedDateTime{DateTime: "2024-05-01T09:00:00", ZoneID: "America/New_York"}
	if got := timeRangeLabel(sum, zone); got != "09:00 - 10:30" {
		t.Fatalf("timeRangeLabel own-zone = %q, want %q", got, "09:00 - 10:30")
	}

	sum.Deadline = datetime.ZonedDateTime{}
	if got := timeRangeLabel(sum, zone); got != "09:00 - --:--" {
		t.Fatalf("timeRangeLabel unresolvable = %q, want %q", got, "09:00 - --:--")
	}
}

func TestMinutesLabel(t *testing.T) {
	cases := []struct {
		name    string
		minutes int
		want    string
	}{
		{"zero", 0, "0m"},
		{"minutes_only", 45, "45m"},
		{"hours_only", 120, "2h"},
		{"hours_minutes", 620, "10h 20m"},
		{"negative", -5, "0m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := minutesLabel(tc.minutes); got != tc.want {
				t.Fatalf("minutesLabel(%d) = %q, want %q", tc.minutes, got, tc.want)
			}
		})
	}
}

func TestRatioBar(t *testing.T) {
	if got := ratioBar(0, 4); got != "░░░░" {
		t.Fatalf("ratioBar(0) = %q", got)
	}
	if got := ratioBar(1, 4); got != "████" {
		t.Fatalf("ratioBar(1) = %q", got)
	}
	if got := ratioBar(0.5, 4); got != "██░░" {
		t.Fatalf("ratioBar(0.5) = %q", got)
	}
	// Out-of-range ratios clamp instead of panicking on negative repeats.
	if got := ratioBar(1.8, 4); got != "████" {
		t.Fatalf("ratioBar(1.8) = %q", got)
	}
	if got := ratioBar(-0.2, 4); got != "░░░░" {
		t.Fatalf("ratioBar(-0.2) = %q", got)
	}
	if got := ratioBar(0.5, 0); got != "" {
		t.Fatalf("ratioBar width 0 = %q, want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate no-op = %q", got)
	}
	if got := truncate("a very long title", 9); got != "a very..." {
		t.Fatalf("truncate = %q, want %q", got, "a very...")
	}
	if got := truncate("abcd", 2); got != "ab" {
		t.Fatalf("truncate limit<=3 = %q, want ab", got)
	}
}

func TestStripCellLabel(t *testing.T) {
	if got := stripCellLabel("2024-04-29"); got != "Mon 29" {
		t.Fatalf("stripCellLabel = %q, want %q", got, "Mon 29")
	}
	if got := stripCellLabel("garbage"); got != "garbage" {
		t.Fatalf("stripCellLabel malformed = %q, want passthrough", got)
	}
}

func TestWeekStripCells(t *testing.T) {
	keys := []string{"2024-04-29", "2024-04-30", "2024-05-01"}
	presence := map[string]bool{"2024-04-29": true}

	cells := weekStripCells(keys, presence, "2024-04-30", "2024-05-01")
	if len(cells) != 3 {
		t.Fatalf("cells = %d, want 3", len(cells))
	}
	if !cells[0].Present || cells[1].Present {
		t.Fatalf("presence flags wrong: %+v", cells)
	}
	if !cells[1].Selected || cells[0].Selected {
		t.Fatalf("selection flags wrong: %+v", cells)
	}
	if !cells[2].Today || cells[1].Today {
		t.Fatalf("today flags wrong: %+v", cells)
	}
}

func TestActionHints(t *testing.T) {
	caps := lifecycle.Capabilities{Start: true, Cancel: true, Known: true}
	hints := actionHints(caps, false)
	if len(hints) != 2 || hints[0] != "s start" || hints[1] != "x cancel" {
		t.Fatalf("hints = %v", hints)
	}

	if hints := actionHints(caps, true); hints != nil {
		t.Fatalf("busy hints = %v, want none", hints)
	}
	if hints := actionHints(lifecycle.Capabilities{}, false); hints != nil {
		t.Fatalf("unknown hints = %v, want none", hints)
	}

	running := lifecycle.Capabilities{Pause: true, Complete: true, Cancel: true, Known: true}
	hints = actionHints(running, false)
	if len(hints) != 3 || hints[0] != "p pause" {
		t.Fatalf("running hints = %v", hints)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 3); got != 3 {
		t.Fatalf("clamp above = %d", got)
	}
	if got := clamp(-1, 0, 3); got != 0 {
		t.Fatalf("clamp below = %d", got)
	}
	if got := clamp(2, 0, -1); got != 0 {
		t.Fatalf("clamp empty range = %d, want lo", got)
	}
}
