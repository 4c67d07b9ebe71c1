// Package app provides the orchestration layer for the dayflow application.
//
// # Overview
//
// This package wires together configuration, the API client, the schedule
// cache, the lifecycle coordinator, polling, and the UI. It serves as the
// composition root where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load dayflow configuration from ~/.config/dayflow/config.toml
//  2. Load user preferences (theme, starting view)
//  3. Initialize the HTTP client for the schedule service
//  4. Create the shared cache.Store keyed in the governing zone
//  5. Create the lifecycle.Coordinator over the store and client
//  6. Launch the background poller goroutine for continuous updates
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Polling Behavior
//
// The poller runs continuously in the background at a configurable interval
// (default: 30 seconds). On each tick it re-fetches today's schedules and
// reconciles the active-schedule reference against the remote, fetching the
// active schedule's detail first when the cache has never seen it. Failures
// are logged and polling continues; consecutive failures back the cadence
// off exponentially up to five minutes.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file invalid
//   - API client initialization failure (bad api_base or member id)
//
// Recoverable errors (logged, polling continues):
//   - Periodic day-list or active-schedule fetch failures
//   - Network timeouts during polling
//
// A failed poll never clobbers cached data, so the UI keeps rendering the
// last known schedules through service outages.
package app
