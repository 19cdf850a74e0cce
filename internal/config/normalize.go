package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizePlex()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSync()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePlex() {
	if strings.TrimSpace(c.Plex.URL) == "" {
		if value, ok := os.LookupEnv("PLEX_URL"); ok {
			c.Plex.URL = value
		}
	}
	if strings.TrimSpace(c.Plex.Token) == "" {
		if value, ok := os.LookupEnv("PLEX_TOKEN"); ok {
			c.Plex.Token = value
		}
	}
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	c.Plex.ClientIdentifier = strings.TrimSpace(c.Plex.ClientIdentifier)
	if c.Plex.TimeoutSeconds <= 0 {
		c.Plex.TimeoutSeconds = defaultPlexTimeoutSeconds
	}
	if c.Plex.RequestsPerSecond < 0 {
		c.Plex.RequestsPerSecond = 0
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.PostersDir) == "" {
		c.Paths.PostersDir = defaultPostersDir
	}
	if c.Paths.PostersDir, err = expandPath(c.Paths.PostersDir); err != nil {
		return fmt.Errorf("paths.posters_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSync() {
	types := make([]string, 0, len(c.Sync.SectionTypes))
	seen := make(map[string]struct{}, len(c.Sync.SectionTypes))
	for _, value := range c.Sync.SectionTypes {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		types = append(types, normalized)
	}
	if len(types) == 0 {
		types = append(types, defaultSectionTypes...)
	}
	c.Sync.SectionTypes = types

	// The marker is a literal suffix; surrounding whitespace is significant
	// only if the user quoted it, so leave it untouched unless empty.
	if c.Sync.SkipMarker == "" {
		c.Sync.SkipMarker = defaultSkipMarker
	}
	if c.Sync.SuggestLimit < 0 {
		c.Sync.SuggestLimit = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
