package ui

import (
	"strings"
)

// renderHeader renders the top bar: logo, current view name, governing zone.
func (m Model) renderHeader() string {
	viewName := "day"
	switch m.view {
	case viewDetail:
		viewName = "detail"
	case viewStats:
		viewName = "stats"
	}

	parts := []string{
		m.styles.Logo.Render("dayflow"),
		m.styles.MutedText.Render(viewName),
		m.styles.FaintText.Render(m.opts.Zone.ID()),
	}
	return m.styles.Header.Width(maxInt(m.width, 0)).Render(strings.Join(parts, "  "))
}
