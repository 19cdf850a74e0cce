package poster

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Options tunes an Engine.
type Options struct {
	// DryRun reports mutating intents instead of issuing them.
	DryRun bool
	// SkipMarker is the titleSort suffix that excludes an entity.
	SkipMarker string
	// SuggestLimit caps near-miss suggestions for missing posters; zero
	// disables them.
	SuggestLimit int
	Logger       *slog.Logger
}

// Engine runs the per-entity sync decision.
type Engine struct {
	resolver *Resolver
	hasher   Hasher
	catalog  Catalog
	opts     Options
	logger   *slog.Logger
}

// NewEngine wires an Engine. A nil hasher defaults to SHA1Hasher.
func NewEngine(resolver *Resolver, hasher Hasher, catalog Catalog, opts Options) *Engine {
	if hasher == nil {
		hasher = SHA1Hasher{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		resolver: resolver,
		hasher:   hasher,
		catalog:  catalog,
		opts:     opts,
		logger:   logger.With("component", "sync"),
	}
}

// Sync classifies one entity and, outside dry-run, issues at most one
// mutating call to bring Plex in line with the local poster. On error the
// returned Result carries OutcomeFailed and the same error.
func (e *Engine) Sync(ctx context.Context, entity Entity) (Result, error) {
	result := Result{Entity: entity, DryRun: e.opts.DryRun}
	logger := e.logger.With("section", entity.Scope.Title, "collection", entity.Title, "rating_key", entity.ID)

	if err := ctx.Err(); err != nil {
		return e.fail(result, err)
	}

	if entity.HasSkipMarker(e.opts.SkipMarker) {
		logger.Debug("skip marker found", "title_sort", entity.TitleSort)
		result.Outcome = OutcomeSkipped
		return result, nil
	}

	path, ok, err := e.resolver.Resolve(entity.Scope, entity.Title)
	if err != nil {
		return e.fail(result, err)
	}
	if !ok {
		logger.Debug("no local poster")
		result.Outcome = OutcomeMissing
		result.Suggestions = e.suggest(entity, logger)
		return result, nil
	}

	hash, err := e.hasher.Hash(path)
	if err != nil {
		return e.fail(result, err)
	}
	result.Candidate = Candidate{Path: path, Hash: hash}
	logger = logger.With("poster", path, "hash", hash)
	logger.Debug("local poster resolved")

	images, err := e.catalog.ListImages(ctx, entity.ID)
	if err != nil {
		return e.fail(result, fmt.Errorf("%w: %w", ErrList, err))
	}

	wantID := UploadID(hash)
	if match, found := findUpload(images, wantID); found {
		result.ImageID = match.ID
		if match.Selected {
			logger.Debug("poster already selected")
			result.Outcome = OutcomeAlreadyCorrect
			return result, nil
		}
		result.Outcome = OutcomeReselected
		if e.opts.DryRun {
			logger.Info("would select existing poster", "image", match.ID)
			return result, nil
		}
		if err := e.catalog.SelectImage(ctx, entity.ID, match.ID); err != nil {
			return e.fail(result, fmt.Errorf("%w: %w", ErrSelect, err))
		}
		logger.Info("selected existing poster", "image", match.ID)
		return result, nil
	}

	result.Outcome = OutcomeUploaded
	result.ImageID = wantID
	if e.opts.DryRun {
		logger.Info("would upload poster")
		return result, nil
	}
	if err := e.upload(ctx, entity.ID, path); err != nil {
		return e.fail(result, err)
	}
	logger.Info("uploaded poster")
	return result, nil
}

func (e *Engine) upload(ctx context.Context, entityID, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrUpload, path, err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrUpload, path, err)
	}
	if err := e.catalog.UploadImage(ctx, entityID, file, info.Size()); err != nil {
		return fmt.Errorf("%w: %w", ErrUpload, err)
	}
	return nil
}

func (e *Engine) fail(result Result, err error) (Result, error) {
	result.Outcome = OutcomeFailed
	result.Err = err
	return result, err
}

func (e *Engine) suggest(entity Entity, logger *slog.Logger) []string {
	if e.opts.SuggestLimit <= 0 {
		return nil
	}
	names, err := e.resolver.Suggest(entity.Scope, entity.Title, e.opts.SuggestLimit)
	if err != nil {
		logger.Debug("poster suggestions unavailable", "error", err)
		return nil
	}
	return names
}

// findUpload returns the first image in listing order whose id is wantID.
// Only upload-namespace ids can equal wantID, so other origins never match.
func findUpload(images []RemoteImage, wantID string) (RemoteImage, bool) {
	for _, img := range images {
		if img.Uploaded() && img.ID == wantID {
			return img, true
		}
	}
	return RemoteImage{}, false
}
