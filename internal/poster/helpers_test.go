package poster_test

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"postersync/internal/poster"
)

var movies = poster.Scope{Key: "1", Title: "Movies", Type: "movie"}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// writePoster creates <root>/<scope dir>/<name> with content and returns its path.
func writePoster(t *testing.T, root string, scope poster.Scope, name string, content []byte) string {
	t.Helper()
	dir := filepath.Join(root, scope.DirName())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// countingHasher records which paths were hashed.
type countingHasher struct {
	paths []string
}

func (h *countingHasher) Hash(path string) (string, error) {
	h.paths = append(h.paths, path)
	return poster.SHA1Hasher{}.Hash(path)
}
