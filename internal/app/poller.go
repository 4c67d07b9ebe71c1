package app

import (
	"context"
	"log"
	"time"

	"dayflow/internal/api"
	"dayflow/internal/cache"
	"dayflow/internal/datetime"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes today's
// schedules and the active-schedule reference at a fixed cadence. It returns
// immediately. Consecutive failures back the cadence off exponentially up to
// maxBackoff; a successful refresh restores the base interval.
func StartPoller(ctx context.Context, store *cache.Store, svc api.Service, zone datetime.Zone, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if err := refresh(ctx, store, svc, zone); err != nil {
				failures++
			} else {
				failures = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(calculateBackoff(failures, interval)):
			}
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff. Zero failures yields the base interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// refresh re-fetches today's day list and reconciles the active-schedule
// reference against the remote. Failures are logged and reported but never
// clobber cached data.
func refresh(ctx context.Context, store *cache.Store, svc api.Service, zone datetime.Zone) error {
	key := zone.DateKey(time.Now())
	list, err := svc.ListByDate(ctx, key)
	if err != nil {
		log.Printf("day list poll failed: %v", err)
		return err
	}
	store.SetDaySchedules(key, list)

	id, ok, err := svc.ActiveID(ctx)
	if err != nil {
		log.Printf("active schedule poll failed: %v", err)
		return err
	}
	if !ok {
		store.SetActiveID(0)
		return nil
	}

	// The remote may report a schedule the cache has never seen, for
	// example one started on another device on a day that is not loaded.
	// Fetch its detail so the reference resolves.
	if _, cached := store.Schedule(id); !cached {
		detail, err := svc.Detail(ctx, id)
		if err != nil {
			log.Printf("active schedule detail fetch failed: %v", err)
			return err
		}
		if detail != nil {
			if err := store.UpsertSchedule(*detail); err != nil {
				log.Printf("active schedule upsert failed: %v", err)
				return err
			}
		}
	}
	store.SetActiveID(id)
	return nil
}
