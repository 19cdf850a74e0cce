package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"postersync/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// targetConfigPath is where setup and import write: the --config value, the
// file that was loaded, or the default location.
func (c *commandContext) targetConfigPath() (string, error) {
	if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
		return config.ExpandPath(strings.TrimSpace(*c.configFlag))
	}
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultConfigPath()
}

// serverConfig returns a config with Plex credentials. When they are missing
// and stdin is a terminal, the user is offered the setup flow; done reports
// that setup ran and the command should stop.
func (c *commandContext) serverConfig(cmd *cobra.Command) (cfg *config.Config, done bool, err error) {
	cfg, err = c.ensureConfig()
	if err != nil {
		return nil, false, err
	}
	reqErr := cfg.RequireServer()
	if reqErr == nil {
		return cfg, false, nil
	}
	if !isInteractive(cmd.InOrStdin()) {
		return nil, false, reqErr
	}

	prompter := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	ok, err := prompter.confirm("Configuration not found, would you like to set it up?")
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, fmt.Errorf("aborted: %w", reqErr)
	}
	if err := runSetup(cmd, c, prompter, setupOptions{}); err != nil {
		return nil, false, err
	}
	return nil, true, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func isInteractive(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

var errNoInput = errors.New("no input available")
