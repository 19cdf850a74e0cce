package testsupport

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

// WritePoster writes content to <root>/<scopeDir>/<name> and returns the path.
func WritePoster(t testing.TB, root, scopeDir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(root, scopeDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// UploadID returns the image id Plex assigns to an upload of content.
func UploadID(content []byte) string {
	sum := sha1.Sum(content)
	return "upload://posters/" + hex.EncodeToString(sum[:])
}
