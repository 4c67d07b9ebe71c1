package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// View switching
	ViewDay   key.Binding
	ViewStats key.Binding
	Detail    key.Binding

	// Day navigation
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding

	// List navigation
	Up   key.Binding
	Down key.Binding

	// Lifecycle actions
	Start    key.Binding
	Pause    key.Binding
	Complete key.Binding
	Cancel   key.Binding

	// Data
	Refresh key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to day view"),
		),

		// View switching
		ViewDay: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Day view"),
		),
		ViewStats: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Weekly stats"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Schedule detail"),
		),

		// Day navigation
		PrevDay: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Jump to today"),
		),

		// List navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),

		// Lifecycle actions
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Start schedule"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pause schedule"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Complete schedule"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Cancel schedule"),
		),

		// Data
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh day"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Views
		{k.ViewDay, k.ViewStats, k.Detail, k.Escape},
		// Navigation
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.Today},
		{k.Up, k.Down},
		// Lifecycle
		{k.Start, k.Pause, k.Complete, k.Cancel},
		// General
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
