// Package batch walks Plex library sections and runs the poster sync engine
// over every collection in them.
//
// A Runner selects eligible sections, asks a Confirmer before touching each
// one, processes collections strictly one at a time in Plex's listing order,
// and reports every result as it lands. Counters belong to one ScopeReport;
// a Report aggregates them for the whole run. A collection that fails is
// recorded as failed and the section carries on, while a cancelled context
// ends the run with whatever was already applied left in place.
package batch
