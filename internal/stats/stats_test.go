package stats

import (
	"testing"
	"time"

	"dayflow/internal/datetime"
)

func TestParseISODuration(t *testing.T) {
	cases := map[string]time.Duration{
		"PT10H20M":   10*time.Hour + 20*time.Minute,
		"PT45M":      45 * time.Minute,
		"PT2H":       2 * time.Hour,
		"PT0S":       0,
		"PT90S":      90 * time.Second,
		"P1DT2H":     26 * time.Hour,
		"PT1H30M15S": time.Hour + 30*time.Minute + 15*time.Second,
	}
	for value, want := range cases {
		got, err := ParseISODuration(value)
		if err != nil {
			t.Errorf("ParseISODuration(%q) error: %v", value, err)
			continue
		}
		if got != want {
			t.Errorf("ParseISODuration(%q) = %v, want %v", value, got, want)
		}
	}

	for _, bad := range []string{"", "P", "PT", "10h", "PT10X", "T10M"} {
		if _, err := ParseISODuration(bad); err == nil {
			t.Errorf("ParseISODuration(%q) succeeded, want error", bad)
		}
	}
}

func TestBuildView(t *testing.T) {
	seoul := datetime.MustLoadZone("Asia/Seoul")

	view, err := BuildView(Weekly{
		WeekStart:            "2024-04-29",
		DeepWorkElapsedTime:  "PT10H20M",
		AdminWorkElapsedTime: "PT3H",
		TotalWorkElapsedTime: "PT15H",
	}, seoul)
	if err != nil {
		t.Fatalf("BuildView error: %v", err)
	}

	if view.DeepWorkMinutes != 620 || view.AdminWorkMinutes != 180 || view.TotalMinutes != 900 {
		t.Fatalf("minutes = %d/%d/%d, want 620/180/900",
			view.DeepWorkMinutes, view.AdminWorkMinutes, view.TotalMinutes)
	}
	if view.DeepWorkRatio < 0.688 || view.DeepWorkRatio > 0.689 {
		t.Fatalf("DeepWorkRatio = %f, want ~0.6889", view.DeepWorkRatio)
	}
	if view.WeekStartLabel != "Apr 29 - May 5" {
		t.Fatalf("WeekStartLabel = %q, want Apr 29 - May 5", view.WeekStartLabel)
	}
}

func TestBuildViewZeroTotal(t *testing.T) {
	seoul := datetime.MustLoadZone("Asia/Seoul")

	view, err := BuildView(Weekly{
		WeekStart:            "2024-04-29",
		DeepWorkElapsedTime:  "PT0S",
		AdminWorkElapsedTime: "PT0S",
		TotalWorkElapsedTime: "PT0S",
	}, seoul)
	if err != nil {
		t.Fatalf("BuildView error: %v", err)
	}
	if view.DeepWorkRatio != 0 || view.AdminWorkRatio != 0 {
		t.Fatalf("ratios = %f/%f, want 0/0 for an empty week", view.DeepWorkRatio, view.AdminWorkRatio)
	}
}

func TestBuildViewRejectsMalformed(t *testing.T) {
	seoul := datetime.MustLoadZone("Asia/Seoul")

	if _, err := BuildView(Weekly{WeekStart: "next week"}, seoul); err == nil {
		t.Fatal("BuildView accepted malformed week start")
	}
	if _, err := BuildView(Weekly{
		WeekStart:            "2024-04-29",
		DeepWorkElapsedTime:  "ten hours",
		AdminWorkElapsedTime: "PT0S",
		TotalWorkElapsedTime: "PT0S",
	}, seoul); err == nil {
		t.Fatal("BuildView accepted malformed duration")
	}
}
