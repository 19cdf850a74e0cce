package poster

import (
	"context"
	"fmt"
)

// DefaultAction records a replacement of Plex's generated placeholder poster.
type DefaultAction struct {
	ImageID string
	DryRun  bool
}

// Describe returns the one-line status for the replacement.
func (a DefaultAction) Describe() string {
	if a.DryRun {
		return "Default Plex generated poster detected; would change selected poster to " + a.ImageID
	}
	return "Default Plex generated poster replaced with " + a.ImageID
}

// ReplaceDefault swaps a selected placeholder poster for the first
// non-placeholder image Plex lists. It returns nil when a non-placeholder
// image is already selected or no alternative exists.
func (e *Engine) ReplaceDefault(ctx context.Context, entity Entity) (*DefaultAction, error) {
	images, err := e.catalog.ListImages(ctx, entity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrList, err)
	}

	var replacement string
	for _, img := range images {
		if img.Selected && !img.IsDefault() {
			return nil, nil
		}
		if replacement == "" && !img.IsDefault() {
			replacement = img.ID
		}
	}
	if replacement == "" {
		return nil, nil
	}

	action := &DefaultAction{ImageID: replacement, DryRun: e.opts.DryRun}
	logger := e.logger.With("section", entity.Scope.Title, "collection", entity.Title, "image", replacement)
	if e.opts.DryRun {
		logger.Info("would replace default poster")
		return action, nil
	}
	if err := e.catalog.SelectImage(ctx, entity.ID, replacement); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSelect, err)
	}
	logger.Info("replaced default poster")
	return action, nil
}
