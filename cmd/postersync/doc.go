// Package main hosts the postersync CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, wires the Plex client,
// poster engine, digest cache, run journal and run lock together, and
// renders progress the way an operator watching a terminal wants to read it.
// Decision logic lives in internal/poster and internal/batch; commands here
// only assemble and present.
package main
