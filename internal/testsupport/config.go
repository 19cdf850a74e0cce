package testsupport

import (
	"path/filepath"
	"testing"

	"postersync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The Plex section points nowhere until WithPlex is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Plex.Token = "test-token"
	cfgVal.Plex.ClientIdentifier = "test-client"
	cfgVal.Paths.PostersDir = filepath.Join(base, "posters")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPlex points the config at a Plex server.
func WithPlex(url, token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Plex.URL = url
		b.cfg.Plex.Token = token
	}
}

// WithSectionTypes overrides the eligible section types.
func WithSectionTypes(types ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.SectionTypes = types
	}
}

// WithoutHashCache disables the digest cache.
func WithoutHashCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.HashCache = false
	}
}
