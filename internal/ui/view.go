package ui

import "strings"

// View renders the full frame.
func (m Model) View() string {
	var body string
	switch m.view {
	case viewDetail:
		body = m.renderDetail()
	case viewStats:
		body = m.renderStats()
	default:
		body = m.renderWeekStrip() + "\n" + m.renderDayList()
	}

	sections := []string{
		m.renderHeader(),
		body,
		m.renderMiniPlayer(),
		m.help.View(m.keys),
	}
	return strings.Join(sections, "\n")
}
