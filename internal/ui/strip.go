package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dayflow/internal/datetime"
)

// stripCell is one day of the weekly strip.
type stripCell struct {
	Key      string
	Label    string
	Present  bool
	Selected bool
	Today    bool
}

// weekStripCells derives the seven strip cells from the week's day keys and
// the presence map.
func weekStripCells(keys []string, presence map[string]bool, selectedKey, todayKey string) []stripCell {
	cells := make([]stripCell, 0, len(keys))
	for _, key := range keys {
		cells = append(cells, stripCell{
			Key:      key,
			Label:    stripCellLabel(key),
			Present:  presence[key],
			Selected: key == selectedKey,
			Today:    key == todayKey,
		})
	}
	return cells
}

// stripCellLabel turns a day key into "Mon 29". A malformed key renders
// as-is.
func stripCellLabel(key string) string {
	day, err := time.Parse(datetime.KeyLayout, key)
	if err != nil {
		return key
	}
	return day.Format("Mon 2")
}

// renderWeekStrip renders the seven-day navigation strip with presence dots.
func (m Model) renderWeekStrip() string {
	presence, loading, _ := m.presence.Snapshot()
	cells := weekStripCells(m.presence.Keys(), presence,
		m.dayList.Key(), m.opts.Zone.DateKey(time.Now()))

	rendered := make([]string, 0, len(cells)+1)
	for _, cell := range cells {
		dot := "·"
		dotStyle := m.styles.FaintText
		if cell.Present {
			dot = "●"
			dotStyle = m.styles.AccentText
		}

		label := cell.Label
		labelStyle := m.styles.MutedText
		if cell.Today {
			labelStyle = m.styles.Text
		}

		body := dotStyle.Render(dot) + " " + labelStyle.Render(label)
		block := lipgloss.NewStyle().Padding(0, 1)
		if cell.Selected {
			block = m.styles.Selected.Padding(0, 1)
			body = dot + " " + label
			rendered = append(rendered, block.Render(body))
			continue
		}
		rendered = append(rendered, block.Render(body))
	}
	if loading {
		rendered = append(rendered, m.spin.View())
	}

	return strings.Join(rendered, " ")
}
