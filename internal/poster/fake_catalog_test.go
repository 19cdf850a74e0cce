package poster_test

import (
	"context"
	"fmt"
	"io"
	"sync"

	"postersync/internal/poster"
)

type uploadCall struct {
	entityID string
	body     []byte
}

type selectCall struct {
	entityID string
	imageID  string
}

// fakeCatalog mimics Plex: an upload lands as upload://posters/<sha1> and
// becomes the selected image.
type fakeCatalog struct {
	mu      sync.Mutex
	images  map[string][]poster.RemoteImage
	lists   []string
	uploads []uploadCall
	selects []selectCall

	listErr   error
	uploadErr error
	selectErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{images: make(map[string][]poster.RemoteImage)}
}

func (f *fakeCatalog) set(entityID string, images ...poster.RemoteImage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[entityID] = images
}

func (f *fakeCatalog) ListImages(ctx context.Context, entityID string) ([]poster.RemoteImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, entityID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]poster.RemoteImage(nil), f.images[entityID]...), nil
}

func (f *fakeCatalog) UploadImage(ctx context.Context, entityID string, body io.Reader, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return fmt.Errorf("upload declared %d bytes, sent %d", size, len(data))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, uploadCall{entityID: entityID, body: data})
	if f.uploadErr != nil {
		return f.uploadErr
	}
	hash, err := poster.HashReader(bytesReader(data))
	if err != nil {
		return err
	}
	images := f.images[entityID]
	for i := range images {
		images[i].Selected = false
	}
	f.images[entityID] = append(images, poster.RemoteImage{ID: poster.UploadID(hash), Selected: true})
	return nil
}

func (f *fakeCatalog) SelectImage(ctx context.Context, entityID, imageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selects = append(f.selects, selectCall{entityID: entityID, imageID: imageID})
	if f.selectErr != nil {
		return f.selectErr
	}
	images := f.images[entityID]
	for i := range images {
		images[i].Selected = images[i].ID == imageID
	}
	return nil
}

func (f *fakeCatalog) mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads) + len(f.selects)
}

func (f *fakeCatalog) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lists) + len(f.uploads) + len(f.selects)
}
