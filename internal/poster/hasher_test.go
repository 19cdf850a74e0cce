package poster_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"postersync/internal/poster"
)

func TestSHA1HasherKnownDigest(t *testing.T) {
	root := t.TempDir()
	path := writePoster(t, root, movies, "abc.jpg", []byte("abc"))

	got, err := poster.SHA1Hasher{}.Hash(path)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if want := "a9993e364706816aba3e25717850c26c9cd0d89d"; got != want {
		t.Fatalf("Hash = %s, want %s", got, want)
	}
}

func TestHashReaderSpansChunks(t *testing.T) {
	data := bytes.Repeat([]byte("poster"), 50_000)
	first, err := poster.HashReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("HashReader returned error: %v", err)
	}
	second, err := poster.HashReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("HashReader returned error: %v", err)
	}
	if first != second {
		t.Fatalf("hash not deterministic: %s vs %s", first, second)
	}
	if first != sha1Hex(data) {
		t.Fatalf("hash = %s, want %s", first, sha1Hex(data))
	}
	if strings.ToLower(first) != first || len(first) != 40 {
		t.Fatalf("expected 40 lowercase hex chars, got %q", first)
	}
}

func TestSHA1HasherMissingFile(t *testing.T) {
	_, err := poster.SHA1Hasher{}.Hash(filepath.Join(t.TempDir(), "gone.jpg"))
	if !errors.Is(err, poster.ErrHash) {
		t.Fatalf("expected ErrHash, got %v", err)
	}
}
