package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrNotConfigured reports that the Plex server URL or token is missing.
var ErrNotConfigured = errors.New("plex server is not configured")

// Plex contains connection settings for the Plex Media Server.
type Plex struct {
	URL               string  `toml:"url"`
	Token             string  `toml:"token"`
	ClientIdentifier  string  `toml:"client_identifier"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Paths contains the local directory layout.
type Paths struct {
	PostersDir string `toml:"posters_dir"`
	StateDir   string `toml:"state_dir"`
	LogDir     string `toml:"log_dir"`
}

// Sync contains the poster synchronization policy.
type Sync struct {
	// SectionTypes lists the Plex section types eligible for a run.
	SectionTypes []string `toml:"section_types"`
	// SkipMarker is the titleSort suffix that excludes a collection.
	SkipMarker string `toml:"skip_marker"`
	// HashCache reuses local digests while a file's size and mtime are unchanged.
	HashCache bool `toml:"hash_cache"`
	// SuggestLimit caps the near-miss file names reported for missing posters.
	// Zero disables suggestions.
	SuggestLimit   int  `toml:"suggest_limit"`
	ReplaceDefault bool `toml:"replace_default"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for postersync.
type Config struct {
	Plex    Plex    `toml:"plex"`
	Paths   Paths   `toml:"paths"`
	Sync    Sync    `toml:"sync"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/postersync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("postersync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Save writes cfg to path as TOML. The file holds the Plex token, so it is
// created with owner-only permissions.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// IsConfigured reports whether the Plex URL and token are both present.
func (c *Config) IsConfigured() bool {
	return c != nil && c.Plex.URL != "" && c.Plex.Token != ""
}

// RequireServer returns ErrNotConfigured unless the Plex URL and token are set.
func (c *Config) RequireServer() error {
	if c == nil {
		return ErrNotConfigured
	}
	var missing []string
	if c.Plex.URL == "" {
		missing = append(missing, "plex.url")
	}
	if c.Plex.Token == "" {
		missing = append(missing, "plex.token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not set (run 'postersync setup' or export PLEX_URL/PLEX_TOKEN)", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// EnsureDirectories creates the state and log directories. The posters
// directory is only read, so a missing one is left for the resolver to
// report as missing posters.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the location of the run journal database.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// HashCachePath returns the location of the local digest cache.
func (c *Config) HashCachePath() string {
	return filepath.Join(c.Paths.StateDir, "hashes.db")
}

// LockPath returns the location of the single-instance run lock.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "postersync.lock")
}

// LogPath returns the location of the log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "postersync.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
