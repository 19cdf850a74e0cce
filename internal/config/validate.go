package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. Missing Plex credentials are
// not a validation failure; commands that talk to Plex call RequireServer.
func (c *Config) Validate() error {
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlex() error {
	if c.Plex.URL != "" {
		parsed, err := url.Parse(c.Plex.URL)
		if err != nil {
			return fmt.Errorf("plex.url: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("plex.url must use http or https, got %q", c.Plex.URL)
		}
		if parsed.Host == "" {
			return fmt.Errorf("plex.url is missing a host: %q", c.Plex.URL)
		}
	}
	if c.Plex.TimeoutSeconds <= 0 {
		return errors.New("plex.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.PostersDir) == "" {
		return errors.New("paths.posters_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
