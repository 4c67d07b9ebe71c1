package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const statsBarWidth = 24

// renderStats renders the weekly statistics view.
func (m Model) renderStats() string {
	var lines []string

	switch {
	case m.statsErr != nil:
		lines = append(lines,
			m.styles.DangerText.Render("statistics load failed: "+m.statsErr.Error()),
			m.styles.MutedText.Render("w retries the fetch"))
	case !m.statsReady:
		lines = append(lines, m.styles.MutedText.Render("Loading statistics..."), m.spin.View())
	default:
		v := m.statsView
		lines = append(lines,
			m.styles.Text.Bold(true).Render("Week of "+v.WeekStartLabel), "")
		lines = append(lines, m.statsRow("Deep work", v.DeepWorkMinutes, v.DeepWorkRatio, m.styles.AccentText))
		lines = append(lines, m.statsRow("Admin", v.AdminWorkMinutes, v.AdminWorkRatio, m.styles.InfoText))
		lines = append(lines, "",
			m.styles.MutedText.Render("Total")+"  "+
				m.styles.Text.Render(minutesLabel(v.TotalMinutes)))
	}

	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) statsRow(label string, minutes int, ratio float64, barStyle lipgloss.Style) string {
	return fmt.Sprintf("%s  %s %s",
		m.styles.MutedText.Render(fmt.Sprintf("%-10s", label)),
		barStyle.Render(ratioBar(ratio, statsBarWidth)),
		m.styles.Text.Render(fmt.Sprintf("%s (%d%%)", minutesLabel(minutes), int(ratio*100+0.5))))
}
