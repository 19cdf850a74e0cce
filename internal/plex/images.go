package plex

import (
	"context"
	"io"

	"postersync/internal/poster"
)

var _ poster.Catalog = (*Client)(nil)

// ListImages returns the posters Plex holds for a collection, in listing order.
func (c *Client) ListImages(ctx context.Context, entityID string) ([]poster.RemoteImage, error) {
	container, err := c.container(ctx, Endpoint{Kind: KindListImages, EntityID: entityID})
	if err != nil {
		return nil, err
	}
	images := make([]poster.RemoteImage, 0, len(container.Metadata))
	for _, m := range container.Metadata {
		images = append(images, poster.RemoteImage{ID: m.RatingKey, Selected: m.Selected})
	}
	return images, nil
}

// UploadImage streams size bytes of body to Plex as a new poster. Plex names
// the upload upload://posters/<sha1 of body> and selects it.
func (c *Client) UploadImage(ctx context.Context, entityID string, body io.Reader, size int64) error {
	return c.do(ctx, Endpoint{Kind: KindUploadImage, EntityID: entityID}, body, size, nil)
}

// SelectImage makes an existing poster the selected one.
func (c *Client) SelectImage(ctx context.Context, entityID, imageID string) error {
	return c.do(ctx, Endpoint{Kind: KindSelectImage, EntityID: entityID, ImageID: imageID}, nil, 0, nil)
}
