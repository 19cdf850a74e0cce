// Package config loads, normalizes, and validates postersync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads and writes TOML files, and honours environment fallbacks
// such as PLEX_URL and PLEX_TOKEN. The Config type gathers every knob the CLI
// and the sync engine need: the Plex server, the posters directory tree, the
// sync policy, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
