package batch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"postersync/internal/logging"
	"postersync/internal/poster"
)

// Skip reasons reported for sections that were not processed.
const (
	SkipNotSelected = "not selected"
	SkipDeclined    = "not confirmed"
)

// Source lists the sections and collections to process.
type Source interface {
	Sections(ctx context.Context) ([]poster.Scope, error)
	Collections(ctx context.Context, scope poster.Scope) ([]poster.Entity, error)
}

// Syncer runs the per-collection decision. *poster.Engine implements it.
type Syncer interface {
	Sync(ctx context.Context, entity poster.Entity) (poster.Result, error)
	ReplaceDefault(ctx context.Context, entity poster.Entity) (*poster.DefaultAction, error)
}

// Confirmer gates each section before it is processed.
type Confirmer interface {
	Confirm(ctx context.Context, scope poster.Scope, collections int) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, scope poster.Scope, collections int) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, scope poster.Scope, collections int) (bool, error) {
	return f(ctx, scope, collections)
}

// AutoConfirm approves every section.
var AutoConfirm = ConfirmFunc(func(context.Context, poster.Scope, int) (bool, error) { return true, nil })

// Reporter receives progress as the run advances.
type Reporter interface {
	ScopeSkipped(report ScopeReport)
	ScopeStarted(scope poster.Scope, collections int)
	EntityStarted(entity poster.Entity, index, total int)
	EntityFinished(result poster.Result)
	ScopeFinished(report ScopeReport)
}

// Journal persists results. history.Run implements it.
type Journal interface {
	Record(ctx context.Context, result poster.Result) error
}

// Options configures a Runner.
type Options struct {
	// SectionTypes lists eligible Plex section types; empty means "movie".
	SectionTypes []string
	// ScopeIDs restricts the run to these section keys when non-empty.
	ScopeIDs []string
	// ReplaceDefault swaps Plex's generated poster on collections without a
	// local poster.
	ReplaceDefault bool
	Confirmer      Confirmer
	Reporter       Reporter
	Journal        Journal
	Logger         *slog.Logger
}

// Runner processes sections sequentially.
type Runner struct {
	source Source
	syncer Syncer
	opts   Options
	logger *slog.Logger
}

// NewRunner wires a Runner. A nil Confirmer approves every section.
func NewRunner(source Source, syncer Syncer, opts Options) *Runner {
	if opts.Confirmer == nil {
		opts.Confirmer = AutoConfirm
	}
	if len(opts.SectionTypes) == 0 {
		opts.SectionTypes = []string{"movie"}
	}
	return &Runner{
		source: source,
		syncer: syncer,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "batch"),
	}
}

// Eligible reports whether a section's type is processed at all.
func (r *Runner) Eligible(scope poster.Scope) bool {
	return slices.ContainsFunc(r.opts.SectionTypes, func(t string) bool {
		return strings.EqualFold(t, scope.Type)
	})
}

// Run processes every eligible section. The returned report holds every
// section reached, including the one interrupted by an error.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	var report Report

	scopes, err := r.source.Sections(ctx)
	if err != nil {
		return report, fmt.Errorf("list sections: %w", err)
	}

	for _, scope := range scopes {
		if !r.Eligible(scope) {
			continue
		}
		if !r.selected(scope) {
			skipped := ScopeReport{Scope: scope, SkipReason: SkipNotSelected}
			r.reportSkipped(skipped)
			report.add(skipped)
			continue
		}

		scopeReport, err := r.RunScope(ctx, scope)
		report.add(scopeReport)
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

// RunScope lists, confirms and processes one section.
func (r *Runner) RunScope(ctx context.Context, scope poster.Scope) (ScopeReport, error) {
	report := ScopeReport{Scope: scope, Outcomes: make(map[poster.Outcome]int)}
	logger := r.logger.With(logging.String(logging.FieldSection, scope.Title), logging.String("section_key", scope.Key))

	entities, err := r.source.Collections(ctx, scope)
	if err != nil {
		return report, fmt.Errorf("list collections of section %s: %w", scope.Key, err)
	}

	ok, err := r.opts.Confirmer.Confirm(ctx, scope, len(entities))
	if err != nil {
		return report, fmt.Errorf("confirm section %s: %w", scope.Key, err)
	}
	if !ok {
		report.SkipReason = SkipDeclined
		logger.Info("section not confirmed")
		r.reportSkipped(report)
		return report, nil
	}
	report.Confirmed = true

	if r.opts.Reporter != nil {
		r.opts.Reporter.ScopeStarted(scope, len(entities))
	}
	logger.Info("section started", logging.Int("collections", len(entities)))

	for i, entity := range entities {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if r.opts.Reporter != nil {
			r.opts.Reporter.EntityStarted(entity, i+1, len(entities))
		}

		result, err := r.syncOne(ctx, entity)
		if err != nil && isCancellation(ctx, err) {
			return report, err
		}
		if err != nil {
			logging.WarnWithContext(logger, "collection sync failed", "collection_sync_failed",
				logging.String("collection", entity.Title),
				logging.String("rating_key", entity.ID),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check Plex connectivity and the poster file"))
		}

		report.Counters.Add(result.Outcome)
		report.Outcomes[result.Outcome]++
		if r.opts.Journal != nil {
			if jerr := r.opts.Journal.Record(ctx, result); jerr != nil {
				logger.Warn("failed to journal result", logging.String("collection", entity.Title), logging.Error(jerr))
			}
		}
		if r.opts.Reporter != nil {
			r.opts.Reporter.EntityFinished(result)
		}
	}

	logger.Info("section finished",
		logging.Int("found", report.Counters.Found),
		logging.Int("missing", report.Counters.Missing),
		logging.Int("skipped", report.Counters.Skipped),
		logging.Int("failed", report.Counters.Failed))
	if r.opts.Reporter != nil {
		r.opts.Reporter.ScopeFinished(report)
	}
	return report, nil
}

// syncOne runs the engine for one entity and, when enabled, the default
// poster fix for entities without a local poster.
func (r *Runner) syncOne(ctx context.Context, entity poster.Entity) (poster.Result, error) {
	result, err := r.syncer.Sync(ctx, entity)
	if err != nil {
		result.Entity = entity
		result.Outcome = poster.OutcomeFailed
		result.Err = err
		return result, err
	}
	if result.Outcome != poster.OutcomeMissing || !r.opts.ReplaceDefault {
		return result, nil
	}

	action, err := r.syncer.ReplaceDefault(ctx, entity)
	if err != nil {
		if isCancellation(ctx, err) {
			return result, err
		}
		// The entity stays Missing; the fix is best effort.
		r.logger.Warn("default poster replacement failed",
			logging.String(logging.FieldSection, entity.Scope.Title),
			logging.String("collection", entity.Title),
			logging.Error(err))
		return result, nil
	}
	result.Default = action
	return result, nil
}

func (r *Runner) selected(scope poster.Scope) bool {
	return len(r.opts.ScopeIDs) == 0 || slices.Contains(r.opts.ScopeIDs, scope.Key)
}

func (r *Runner) reportSkipped(report ScopeReport) {
	if r.opts.Reporter != nil {
		r.opts.Reporter.ScopeSkipped(report)
	}
}

// isCancellation reports whether err ended the run rather than one entity.
// Per-request HTTP timeouts also satisfy errors.Is(err, DeadlineExceeded), so
// only the run context decides.
func isCancellation(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil
}
