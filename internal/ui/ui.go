package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dayflow/internal/api"
	"dayflow/internal/cache"
	"dayflow/internal/datetime"
	"dayflow/internal/lifecycle"
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Service   api.Service
	Store     *cache.Store
	Coord     *lifecycle.Coordinator
	Zone      datetime.Zone
	PollTick  time.Duration
	ThemeName string
	StartView string
	PrefsPath string
}

const uiTickInterval = time.Second

// Run starts the TUI and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a schedule cache")
	}
	if opts.Service == nil {
		return fmt.Errorf("ui requires a schedule service")
	}
	if opts.Coord == nil {
		return fmt.Errorf("ui requires a lifecycle coordinator")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	model := New(opts)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)
	_, err := program.Run()
	if err != nil && opts.Context.Err() != nil {
		// Context cancellation is a clean shutdown, not a UI failure.
		return nil
	}
	return err
}
