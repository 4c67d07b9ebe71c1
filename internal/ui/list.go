package ui

import (
	"fmt"
	"strings"
)

// renderDayList renders the schedule list for the selected day.
func (m Model) renderDayList() string {
	schedules, loading, err := m.dayList.Snapshot()

	header := m.styles.Text.Bold(true).Render(m.day.Format("Monday, Jan 2 2006"))
	if loading {
		header += " " + m.spin.View()
	}

	var lines []string
	lines = append(lines, header, "")

	switch {
	case err != nil:
		lines = append(lines,
			m.styles.DangerText.Render("load failed: "+err.Error()),
			m.styles.MutedText.Render("r retries the fetch"))
	case len(schedules) == 0 && !loading:
		lines = append(lines, m.styles.MutedText.Render("No schedules for this day."))
	default:
		width := m.width - 6
		if width < 40 {
			width = 40
		}
		selected := clamp(m.selected, 0, len(schedules)-1)
		for i, sum := range schedules {
			line := m.renderListRow(sum.Title, timeRangeLabel(sum, m.opts.Zone),
				stateBadge(sum.State), string(sum.State),
				priorityLabel(sum.Importance, sum.Urgency), width)
			if i == selected {
				line = m.styles.Selected.Render("▸ ") + line
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
	}

	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderListRow(title, timeRange, badge, state, priority string, width int) string {
	titleWidth := width - len(timeRange) - len(badge) - len(priority) - 8
	if titleWidth < 10 {
		titleWidth = 10
	}
	return fmt.Sprintf("%s  %s  %s  %s",
		m.styles.MutedText.Render(timeRange),
		m.styles.Text.Render(fmt.Sprintf("%-*s", titleWidth, truncate(title, titleWidth))),
		m.styles.StateStyle(state).Render(badge),
		m.styles.FaintText.Render(priority))
}
