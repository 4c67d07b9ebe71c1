package app

import (
	"context"
	"fmt"
	"time"

	"dayflow/internal/api"
	"dayflow/internal/cache"
	"dayflow/internal/config"
	"dayflow/internal/lifecycle"
	"dayflow/internal/prefs"
	"dayflow/internal/ui"
)

// Options configure the dayflow application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/dayflow/prefs.toml
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the dayflow TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := api.NewClient(cfg.APIBase, cfg.MemberID)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	zone := cfg.Zone()
	store := cache.NewStore(zone)
	coord := lifecycle.NewCoordinator(store, client, zone)

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, client, zone, interval)

	// Do initial refresh to populate the cache before the UI starts
	_ = refresh(ctx, store, client, zone)

	uiOpts := ui.Options{
		Context:   ctx,
		Service:   client,
		Store:     store,
		Coord:     coord,
		Zone:      zone,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		StartView: userPrefs.StartView,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
