// Package logging assembles structured slog loggers for postersync.
//
// It owns the console and JSON handlers, level parsing, and output plumbing
// (log file plus optional stderr mirroring), and provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
