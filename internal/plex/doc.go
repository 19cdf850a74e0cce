// Package plex talks to a Plex Media Server on behalf of the poster sync.
//
// Client implements poster.Catalog (list, upload and select collection
// posters) and the library listing the batch runner walks: sections and the
// collections inside them. Every request carries the server token and the
// client identifier persisted in config, and requests can be paced with a
// token bucket so large libraries do not hammer small servers.
package plex
