// Package stats models the weekly work statistics returned by the schedule
// service and derives the view-ready aggregates.
package stats

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"dayflow/internal/datetime"
)

// Weekly mirrors the statistics payload. Elapsed fields are ISO-8601
// durations such as "PT10H20M".
type Weekly struct {
	WeekStart            string `json:"weekStart"`
	DeepWorkElapsedTime  string `json:"deepWorkElapsedTime"`
	AdminWorkElapsedTime string `json:"adminWorkElapsedTime"`
	TotalWorkElapsedTime string `json:"totalWorkElapsedTime"`
}

// View is the weekly statistics shaped for display.
type View struct {
	WeekStartLabel   string
	DeepWorkMinutes  int
	AdminWorkMinutes int
	TotalMinutes     int
	DeepWorkRatio    float64
	AdminWorkRatio   float64
}

var isoDurationPattern = regexp.MustCompile(
	`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration parses the day/hour/minute/second ISO-8601 duration forms
// the statistics endpoint emits.
func ParseISODuration(value string) (time.Duration, error) {
	m := isoDurationPattern.FindStringSubmatch(value)
	if m == nil || value == "P" || value == "PT" {
		return 0, fmt.Errorf("parse iso duration %q", value)
	}

	var total time.Duration
	if m[1] != "" {
		days, _ := strconv.Atoi(m[1])
		total += time.Duration(days) * 24 * time.Hour
	}
	if m[2] != "" {
		hours, _ := strconv.Atoi(m[2])
		total += time.Duration(hours) * time.Hour
	}
	if m[3] != "" {
		minutes, _ := strconv.Atoi(m[3])
		total += time.Duration(minutes) * time.Minute
	}
	if m[4] != "" {
		seconds, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return 0, fmt.Errorf("parse iso duration %q: %w", value, err)
		}
		total += time.Duration(seconds * float64(time.Second))
	}
	return total, nil
}

// BuildView converts the wire payload into display aggregates. A zero total
// yields zero ratios rather than NaN.
func BuildView(w Weekly, zone datetime.Zone) (View, error) {
	weekStart, err := time.ParseInLocation(datetime.KeyLayout, w.WeekStart, zone.Location())
	if err != nil {
		return View{}, fmt.Errorf("parse week start %q: %w", w.WeekStart, err)
	}

	deep, err := ParseISODuration(w.DeepWorkElapsedTime)
	if err != nil {
		return View{}, err
	}
	admin, err := ParseISODuration(w.AdminWorkElapsedTime)
	if err != nil {
		return View{}, err
	}
	total, err := ParseISODuration(w.TotalWorkElapsedTime)
	if err != nil {
		return View{}, err
	}

	weekEnd := weekStart.AddDate(0, 0, 6)
	view := View{
		WeekStartLabel:   weekStart.Format("Jan 2") + " - " + weekEnd.Format("Jan 2"),
		DeepWorkMinutes:  int(deep.Minutes()),
		AdminWorkMinutes: int(admin.Minutes()),
		TotalMinutes:     int(total.Minutes()),
	}
	if view.TotalMinutes > 0 {
		view.DeepWorkRatio = float64(view.DeepWorkMinutes) / float64(view.TotalMinutes)
		view.AdminWorkRatio = float64(view.AdminWorkMinutes) / float64(view.TotalMinutes)
	}
	return view, nil
}
