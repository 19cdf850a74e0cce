package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// legacyConfig mirrors the config-v2.yaml file written by the earlier
// Python tooling.
type legacyConfig struct {
	PlexURL   string `yaml:"plex_url"`
	PlexToken string `yaml:"plex_token"`
}

// ImportLegacy copies the Plex URL and token from a config-v2.yaml file into
// cfg. Values already present in cfg are overwritten.
func ImportLegacy(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read legacy config: %w", err)
	}
	var legacy legacyConfig
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("parse legacy config: %w", err)
	}
	legacy.PlexURL = strings.TrimRight(strings.TrimSpace(legacy.PlexURL), "/")
	legacy.PlexToken = strings.TrimSpace(legacy.PlexToken)
	if legacy.PlexURL == "" && legacy.PlexToken == "" {
		return fmt.Errorf("legacy config %s has neither plex_url nor plex_token", path)
	}
	if legacy.PlexURL != "" {
		cfg.Plex.URL = legacy.PlexURL
	}
	if legacy.PlexToken != "" {
		cfg.Plex.Token = legacy.PlexToken
	}
	return cfg.Validate()
}
