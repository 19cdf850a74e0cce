package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"postersync/internal/config"
	"postersync/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	plex       *testsupport.FakePlex
	configPath string
	homeDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("PLEX_URL", "")
	t.Setenv("PLEX_TOKEN", "")

	fp := testsupport.NewFakePlex(t, "cli-token")
	fp.AddSection(testsupport.FakeSection{Key: "1", Title: "Movies", Type: "movie"},
		testsupport.FakeCollection{RatingKey: "101", Title: "Alien", TitleSort: "Alien"},
		testsupport.FakeCollection{RatingKey: "102", Title: "Batman", TitleSort: "Batman"},
	)
	fp.AddSection(testsupport.FakeSection{Key: "2", Title: "Music", Type: "artist"})

	cfg := testsupport.NewConfig(t, testsupport.WithPlex(fp.URL(), "cli-token"))
	configPath := filepath.Join(homeDir, ".config", "postersync", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, plex: fp, configPath: configPath, homeDir: homeDir}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
