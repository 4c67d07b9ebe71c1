package ui

import (
	"strings"
)

// renderDetail renders the full record of the opened schedule.
func (m Model) renderDetail() string {
	if m.detail == nil {
		return m.styles.Panel.Render(m.styles.MutedText.Render("No schedule opened."))
	}
	sum, has, loading, err := m.detail.Snapshot()

	var lines []string
	switch {
	case err != nil && !has:
		lines = append(lines,
			m.styles.DangerText.Render("detail load failed: "+err.Error()),
			m.styles.MutedText.Render("esc returns to the day view"))
	case !has:
		lines = append(lines, m.styles.MutedText.Render("Loading schedule..."), m.spin.View())
	default:
		title := m.styles.Text.Bold(true).Render(sum.Title)
		if loading {
			title += " " + m.spin.View()
		}
		lines = append(lines, title, "")
		lines = append(lines, m.detailRow("State", m.styles.StateStyle(string(sum.State)).Render(stateBadge(sum.State))))
		lines = append(lines, m.detailRow("Time", timeRangeLabel(sum, m.opts.Zone)))
		lines = append(lines, m.detailRow("Priority", priorityLabel(sum.Importance, sum.Urgency)))
		if label := taskTypeLabel(sum.TaskType); label != "" {
			lines = append(lines, m.detailRow("Type", label))
		}
		if sum.Description != "" {
			lines = append(lines, "", m.styles.MutedText.Render("Description"))
			lines = append(lines, m.styles.Text.Render(sum.Description))
		}
		if err != nil {
			lines = append(lines, "", m.styles.WarningText.Render("refresh failed: "+err.Error()))
		}
	}

	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) detailRow(label, value string) string {
	return m.styles.MutedText.Render(label+":") + " " + value
}
