package plex

import (
	"context"

	"postersync/internal/poster"
)

// Sections lists every library section on the server.
func (c *Client) Sections(ctx context.Context) ([]poster.Scope, error) {
	container, err := c.container(ctx, Endpoint{Kind: KindSections})
	if err != nil {
		return nil, err
	}
	scopes := make([]poster.Scope, 0, len(container.Directory))
	for _, dir := range container.Directory {
		if dir.Key == "" {
			continue
		}
		scopes = append(scopes, poster.Scope{Key: dir.Key, Title: dir.Title, Type: dir.Type})
	}
	return scopes, nil
}

// Collections lists the collections of a section in Plex's order.
func (c *Client) Collections(ctx context.Context, scope poster.Scope) ([]poster.Entity, error) {
	container, err := c.container(ctx, Endpoint{Kind: KindCollections, SectionKey: scope.Key})
	if err != nil {
		return nil, err
	}
	entities := make([]poster.Entity, 0, len(container.Metadata))
	for _, m := range container.Metadata {
		if m.RatingKey == "" {
			continue
		}
		entities = append(entities, poster.Entity{
			ID:        m.RatingKey,
			Title:     m.Title,
			TitleSort: m.TitleSort,
			Scope:     scope,
		})
	}
	return entities, nil
}

// CheckAuth verifies that the server accepts the configured token.
func (c *Client) CheckAuth(ctx context.Context) error {
	return c.do(ctx, Endpoint{Kind: KindSections}, nil, 0, nil)
}
