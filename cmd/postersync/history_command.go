package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"postersync/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				entries, err := store.Results(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintf(out, "No results recorded for run %s\n", runID)
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					detail := e.ImageID
					if e.Error != "" {
						detail = e.Error
					} else if e.DefaultImage != "" {
						detail = "default replaced: " + e.DefaultImage
					}
					rows = append(rows, []string{e.SectionTitle, e.Title, e.Outcome, detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Library", "Collection", "Outcome", "Detail"}, rows, nil))
				return nil
			}

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				mode := "live"
				if r.DryRun {
					mode = "dry-run"
				}
				rows = append(rows, []string{
					r.ID,
					r.StartedAt.Local().Format(time.DateTime),
					mode,
					r.Status,
					strconv.Itoa(r.Found),
					strconv.Itoa(r.Missing),
					strconv.Itoa(r.Skipped),
					strconv.Itoa(r.Failed),
					strconv.Itoa(r.Mutations),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Mode", "Status", "Found", "Missing", "Skipped", "Failed", "Changes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the per-collection results of one run")
	return cmd
}
