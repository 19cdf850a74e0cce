package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"postersync/internal/batch"
	"postersync/internal/logging"
	"postersync/internal/plex"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all libraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, done, err := ctx.serverConfig(cmd)
			if err != nil || done {
				return err
			}
			logger, err := logging.NewFromConfig(cfg, false)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			client, err := plex.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}
			scopes, err := client.Sections(cmd.Context())
			if err != nil {
				return fmt.Errorf("list libraries: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(scopes) == 0 {
				fmt.Fprintln(out, "No libraries found")
				return nil
			}

			// Only eligibility is needed; the runner never syncs here.
			eligible := batch.NewRunner(client, nil, batch.Options{SectionTypes: cfg.Sync.SectionTypes})
			caser := cases.Title(language.English)
			rows := make([][]string, 0, len(scopes))
			for _, scope := range scopes {
				rows = append(rows, []string{scope.Key, scope.Title, caser.String(scope.Type), yesNo(eligible.Eligible(scope))})
			}
			fmt.Fprintln(out, "Libraries:")
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Type", "Eligible"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
