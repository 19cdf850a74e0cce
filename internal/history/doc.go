// Package history journals poster sync runs in SQLite.
//
// Every run gets a row in runs and every collection it touched a row in
// results, so `postersync history` can show what changed, when, and what
// failed. The journal only records what happened; decisions are always
// made against live Plex state.
package history
