package ui

import (
	"fmt"
	"strings"

	"dayflow/internal/datetime"
	"dayflow/internal/schedule"
)

// stateBadge returns the short display label for a schedule state.
func stateBadge(state schedule.State) string {
	switch state {
	case schedule.StatePending:
		return "todo"
	case schedule.StateInProgress:
		return "running"
	case schedule.StateSuspended:
		return "paused"
	case schedule.StateCompleted:
		return "done"
	case schedule.StateCanceled:
		return "canceled"
	}
	return strings.ToLower(string(state))
}

// taskTypeLabel maps the wire task type to a display label.
func taskTypeLabel(t schedule.TaskType) string {
	switch t {
	case schedule.TaskDeepWork:
		return "deep work"
	case schedule.TaskQuickTask:
		return "quick task"
	case schedule.TaskAdminTask:
		return "admin"
	}
	return ""
}

// timeRangeLabel formats the start and deadline of a schedule as local
// clock times. Unresolvable instants render as "--:--".
func timeRangeLabel(sum schedule.Summary, zone datetime.Zone) string {
	return clockLabel(sum.Date, zone) + " - " + clockLabel(sum.Deadline, zone)
}

func clockLabel(at datetime.ZonedDateTime, zone datetime.Zone) string {
	resolved, err := at.Resolve(zone)
	if err != nil {
		return "--:--"
	}
	return resolved.Format("15:04")
}

// priorityLabel renders the importance/urgency pair compactly.
func priorityLabel(importance, urgency int) string {
	return fmt.Sprintf("I%d U%d", importance, urgency)
}

// minutesLabel renders a minute count as hours and minutes.
func minutesLabel(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	rest := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, rest)
	}
}

// ratioBar renders a fixed-width bar filled proportionally to ratio. Ratios
// outside [0, 1] are clamped.
func ratioBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// truncate truncates a string to max runes with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
