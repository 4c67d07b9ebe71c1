package ui

import (
	"strings"

	"dayflow/internal/lifecycle"
)

// actionHints lists the lifecycle keys legal for the given capabilities. An
// in-flight transition suppresses every hint.
func actionHints(caps lifecycle.Capabilities, busy bool) []string {
	if busy || !caps.Known {
		return nil
	}
	var hints []string
	if caps.Start {
		hints = append(hints, "s start")
	}
	if caps.Pause {
		hints = append(hints, "p pause")
	}
	if caps.Complete {
		hints = append(hints, "c complete")
	}
	if caps.Cancel {
		hints = append(hints, "x cancel")
	}
	return hints
}

// renderMiniPlayer renders the persistent active-schedule bar. When nothing
// is active it shows the controls for the current selection instead.
func (m Model) renderMiniPlayer() string {
	sum, hasActive := m.active.Snapshot()

	var parts []string
	if hasActive {
		parts = append(parts,
			m.styles.StateStyle(string(sum.State)).Render(stateBadge(sum.State)),
			m.styles.Text.Bold(true).Render(truncate(sum.Title, 40)),
			m.styles.MutedText.Render(timeRangeLabel(sum, m.opts.Zone)))
	} else {
		parts = append(parts, m.styles.FaintText.Render("nothing running"))
	}

	id, ok := m.targetID()
	if hasActive {
		// Lifecycle keys drive the active schedule while one exists, except
		// in views that explicitly target another schedule.
		if m.view == viewStats {
			id, ok = sum.ID, true
		}
	}
	if ok {
		hints := actionHints(m.opts.Coord.Can(id), m.opts.Coord.Busy(id))
		if m.opts.Coord.Busy(id) {
			parts = append(parts, m.spin.View())
		}
		for _, hint := range hints {
			parts = append(parts, m.styles.AccentText.Render(hint))
		}
	}

	if m.status != "" {
		parts = append(parts, m.styles.DangerText.Render(truncate(m.status, 60)))
	}

	return m.styles.Footer.Width(maxInt(m.width, 0)).Render(strings.Join(parts, "  "))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
