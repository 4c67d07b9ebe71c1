// Package ui implements the dayflow terminal interface on bubbletea.
//
// # Layout
//
// The frame is a header bar, a body, the mini-player, and a help footer.
// The body is one of three views:
//
//   - Day: a seven-day strip with presence dots above the selected day's
//     schedule list
//   - Detail: the full record of one schedule
//   - Stats: the weekly deep-work/admin aggregates
//
// # Data Flow
//
// The model never touches the schedule cache directly. Each view owns a
// views adapter bound to its slice of the cache; the model re-reads adapter
// snapshots once per second via a tick message, so cache changes committed
// by the poller or the lifecycle coordinator surface without any UI-side
// plumbing. Fetches and lifecycle commands run as tea.Cmd functions off the
// update loop.
//
// Lifecycle keys resolve their target from the current view: the opened
// schedule in the detail view, the selected row in the day view, and the
// active schedule in the stats view. The coordinator decides legality; the
// mini-player only renders hints for transitions that are currently legal.
package ui
