package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"postersync/internal/batch"
	"postersync/internal/config"
	"postersync/internal/hashcache"
	"postersync/internal/history"
	"postersync/internal/logging"
	"postersync/internal/plex"
	"postersync/internal/poster"
	"postersync/internal/runlock"
)

type runOptions struct {
	debug          bool
	dryRun         bool
	force          bool
	libraries      []int
	replaceDefault bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Update collection posters",
		Example: "  postersync run --dry-run --library 5 --library 8",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := ctx.serverConfig(cmd)
			if err != nil || done {
				return err
			}
			return runSync(cmd, cfg, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.debug, "debug", "v", false, "Log debug details to stderr")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "Report what would change without touching Plex")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Process sections without asking for confirmation")
	cmd.Flags().IntSliceVar(&opts.libraries, "library", nil, "Library ID to update (repeatable; default all eligible libraries)")
	cmd.Flags().BoolVar(&opts.replaceDefault, "replace-default", false, "Replace Plex generated posters on collections without a local poster")
	return cmd
}

func runSync(cmd *cobra.Command, cfg *config.Config, opts runOptions) (err error) {
	logger, err := logging.NewFromConfig(cfg, opts.debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger = logger.With(logging.Bool("dry_run", opts.dryRun))

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn("failed to release run lock", logging.Error(releaseErr))
		}
	}()

	hasher, closeHasher := openHasher(cfg, logger)
	defer closeHasher()

	journal, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer journal.Close()

	client, err := plex.NewFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	engine := poster.NewEngine(poster.NewResolver(cfg.Paths.PostersDir), hasher, client, poster.Options{
		DryRun:       opts.dryRun,
		SkipMarker:   cfg.Sync.SkipMarker,
		SuggestLimit: cfg.Sync.SuggestLimit,
		Logger:       logger,
	})

	run, err := journal.BeginRun(cmd.Context(), opts.dryRun)
	if err != nil {
		return fmt.Errorf("start run history: %w", err)
	}
	defer func() {
		if finishErr := run.Finish(err); finishErr != nil {
			logger.Warn("failed to close run history", logging.Error(finishErr))
		}
	}()

	out := cmd.OutOrStdout()
	scopeIDs := make([]string, 0, len(opts.libraries))
	for _, id := range opts.libraries {
		scopeIDs = append(scopeIDs, strconv.Itoa(id))
	}

	runner := batch.NewRunner(client, engine, batch.Options{
		SectionTypes:   cfg.Sync.SectionTypes,
		ScopeIDs:       scopeIDs,
		ReplaceDefault: opts.replaceDefault || cfg.Sync.ReplaceDefault,
		Confirmer: &sectionConfirmer{
			prompter: newPrompter(cmd.InOrStdin(), out),
			out:      out,
			force:    opts.force,
		},
		Reporter: &consoleReporter{out: out, colorize: shouldColorize(out)},
		Journal:  run,
		Logger:   logger,
	})

	if opts.dryRun {
		fmt.Fprintln(out, "\nDry run: no changes will be made to Plex")
	}
	fmt.Fprintln(out, "\nUpdating Collection")
	logger.Info("run started", logging.String("run_id", run.ID))

	started := time.Now()
	report, err := runner.Run(cmd.Context())
	if len(report.Scopes) > 1 {
		printTotals(cmd, report)
	}
	if err != nil {
		if errors.Is(err, plex.ErrUnauthorized) {
			return fmt.Errorf("%w; run 'postersync setup' to update the token", err)
		}
		return err
	}
	logger.Info("run finished",
		logging.String("run_id", run.ID),
		logging.Int("found", report.Totals.Found),
		logging.Int("missing", report.Totals.Missing),
		logging.Int("failed", report.Totals.Failed),
		logging.Duration("elapsed", time.Since(started)))
	return nil
}

// openHasher returns the cached hasher when enabled. A cache that cannot be
// opened degrades to plain hashing.
func openHasher(cfg *config.Config, logger *slog.Logger) (poster.Hasher, func()) {
	if !cfg.Sync.HashCache {
		return poster.SHA1Hasher{}, func() {}
	}
	cache, err := hashcache.Open(cfg.HashCachePath(), poster.SHA1Hasher{}, logger)
	if err != nil {
		logging.WarnWithContext(logger, "hash cache unavailable", "hashcache_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "every poster is hashed this run"),
			logging.String(logging.FieldErrorHint, "another process may hold "+cfg.HashCachePath()))
		return poster.SHA1Hasher{}, func() {}
	}
	return cache, func() {
		if removed, err := cache.Prune(); err == nil && removed > 0 {
			logger.Debug("pruned stale digests", logging.Int("removed", removed))
		}
		hits, misses := cache.Stats()
		logger.Debug("hash cache stats", logging.Int("hits", hits), logging.Int("misses", misses))
		_ = cache.Close()
	}
}

func printTotals(cmd *cobra.Command, report batch.Report) {
	rows := make([][]string, 0, len(report.Scopes)+1)
	for _, s := range report.Scopes {
		if !s.Confirmed {
			rows = append(rows, []string{s.Scope.Key, s.Scope.Title, "-", "-", "-", "-", s.SkipReason})
			continue
		}
		rows = append(rows, countRow(s.Scope.Key, s.Scope.Title, s.Counters, "done"))
	}
	rows = append(rows, countRow("", "Total", report.Totals, ""))

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Library", "Found", "Missing", "Skipped", "Failed", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
}

func countRow(key, title string, c batch.Counters, status string) []string {
	return []string{
		key,
		title,
		strconv.Itoa(c.Found),
		strconv.Itoa(c.Missing),
		strconv.Itoa(c.Skipped),
		strconv.Itoa(c.Failed),
		status,
	}
}
