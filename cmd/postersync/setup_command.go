package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"postersync/internal/config"
	"postersync/internal/plex"
)

type setupOptions struct {
	url      string
	token    string
	noVerify bool
}

func newSetupCommand(ctx *commandContext) *cobra.Command {
	var opts setupOptions

	cmd := &cobra.Command{
		Use:         "setup",
		Short:       "Set configuration values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, ctx, newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "Plex server URL (prompted when omitted)")
	cmd.Flags().StringVar(&opts.token, "token", "", "Plex token (prompted when omitted)")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Save without checking the credentials against Plex")
	return cmd
}

// runSetup asks for the Plex URL and token, checks them against the server
// and writes the config file. Existing settings other than the credentials
// are kept.
func runSetup(cmd *cobra.Command, ctx *commandContext, p *prompter, opts setupOptions) error {
	target, err := ctx.targetConfigPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	cfg, _, _, err := config.Load(target)
	if err != nil {
		// A broken file is replaced from defaults rather than blocking setup.
		def := config.Default()
		cfg = &def
	}

	url := strings.TrimSpace(opts.url)
	if url == "" {
		if url, err = p.ask("Please enter your Plex URL", cfg.Plex.URL); err != nil {
			return err
		}
	}
	token := strings.TrimSpace(opts.token)
	if token == "" {
		if token, err = p.ask("Please enter your Plex Token", cfg.Plex.Token); err != nil {
			return err
		}
	}
	if url == "" || token == "" {
		return errors.New("plex URL and token are both required")
	}

	cfg.Plex.URL = strings.TrimRight(url, "/")
	cfg.Plex.Token = token
	if cfg.Plex.ClientIdentifier == "" {
		cfg.Plex.ClientIdentifier = uuid.NewString()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.noVerify {
		client, err := plex.NewFromConfig(cfg, nil)
		if err != nil {
			return err
		}
		verifyCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if err := client.CheckAuth(verifyCtx); err != nil {
			return fmt.Errorf("verify plex credentials: %w", err)
		}
		fmt.Fprintln(out, "Plex accepted the credentials")
	}

	if err := config.Save(target, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote configuration to %s\n", target)
	return nil
}
