// Package poster decides, per Plex collection, whether a locally curated
// poster must be uploaded, reselected, or left alone.
//
// The Resolver finds the local candidate file using a fixed naming
// convention, the Hasher derives its SHA-1 content identity, and the Engine
// compares that identity with the posters the Catalog already holds for the
// collection. Images uploaded by this tool are listed back by Plex as
// upload://posters/<sha1>, which is what makes the decision idempotent: the
// same bytes are never uploaded twice, and an earlier upload is reselected
// instead of duplicated.
//
// The package performs no I/O beyond local file reads and the Catalog calls
// it is handed; HTTP and batching live in the plex and batch packages.
package poster
