package poster

import (
	"context"
	"io"
)

// Catalog is the remote image store for collection posters.
//
// Plex selects a freshly uploaded image automatically and lists it back
// under UploadID(sha1 of the bytes); the Engine relies on both behaviours.
type Catalog interface {
	ListImages(ctx context.Context, entityID string) ([]RemoteImage, error)
	UploadImage(ctx context.Context, entityID string, body io.Reader, size int64) error
	SelectImage(ctx context.Context, entityID, imageID string) error
}
