// Package hashcache remembers the SHA-1 digests of local poster files.
//
// Hashing every poster on every run is wasted I/O for libraries whose
// artwork rarely changes. The cache stores one entry per absolute file path
// together with the file size and modification time observed when the
// digest was computed; an entry is reused only while both still match, so
// an edited poster is always rehashed.
//
// # Storage
//
// Entries live in a bbolt database (default:
// ~/.local/share/postersync/hashes.db). Only local file identities are
// cached. Remote Plex state is queried fresh on every run.
//
// Enable or disable the cache in config.toml:
//
//	[sync]
//	hash_cache = true
package hashcache
