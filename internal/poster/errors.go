package poster

import "errors"

// Sentinel errors wrapped around collaborator failures so callers can tell
// which step of the pipeline failed.
var (
	ErrResolve = errors.New("resolve local poster")
	ErrHash    = errors.New("hash local poster")
	ErrList    = errors.New("list remote posters")
	ErrUpload  = errors.New("upload poster")
	ErrSelect  = errors.New("select poster")
)
