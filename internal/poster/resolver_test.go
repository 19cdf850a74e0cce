package poster_test

import (
	"os"
	"path/filepath"
	"testing"

	"postersync/internal/poster"
)

func TestResolvePrefersProbeOrder(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{name: "bare jpg", files: []string{"Alien.jpg", "Alien Collection.jpg"}, want: "Alien.jpg"},
		{name: "collection jpg over png", files: []string{"Alien Collection.jpg", "Alien.png"}, want: "Alien Collection.jpg"},
		{name: "png over jpeg", files: []string{"Alien.jpeg", "Alien.png"}, want: "Alien.png"},
		{name: "collection png", files: []string{"Alien Collection.png", "Alien.jpeg"}, want: "Alien Collection.png"},
		{name: "collection jpeg last", files: []string{"Alien Collection.jpeg"}, want: "Alien Collection.jpeg"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			for _, name := range tc.files {
				writePoster(t, root, movies, name, []byte(name))
			}
			path, ok, err := poster.NewResolver(root).Resolve(movies, "Alien")
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if !ok {
				t.Fatal("expected poster to resolve")
			}
			if got := filepath.Base(path); got != tc.want {
				t.Fatalf("resolved %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	resolver := poster.NewResolver(root)
	if err := os.MkdirAll(filepath.Join(resolver.ScopeDir(movies), "Alien.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writePoster(t, root, movies, "Alien.png", []byte("png"))

	path, ok, err := resolver.Resolve(movies, "Alien")
	if err != nil || !ok {
		t.Fatalf("Resolve = %q, %v, %v", path, ok, err)
	}
	if filepath.Base(path) != "Alien.png" {
		t.Fatalf("expected directory to be skipped, got %s", path)
	}
}

func TestResolveMissing(t *testing.T) {
	root := t.TempDir()
	writePoster(t, root, movies, "Aliens.jpg", []byte("x"))

	path, ok, err := poster.NewResolver(root).Resolve(movies, "Alien")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if ok || path != "" {
		t.Fatalf("expected no poster, got %q", path)
	}

	// A scope directory that does not exist is just a miss.
	other := poster.Scope{Key: "9", Title: "Nope", Type: "movie"}
	if _, ok, err := poster.NewResolver(root).Resolve(other, "Alien"); ok || err != nil {
		t.Fatalf("expected miss for absent scope dir, got ok=%v err=%v", ok, err)
	}
}

func TestScopeDirName(t *testing.T) {
	resolver := poster.NewResolver("/posters")
	got := resolver.ScopeDir(poster.Scope{Key: "3", Title: "Kids Movies"})
	if want := filepath.Join("/posters", "3-Kids Movies"); got != want {
		t.Fatalf("ScopeDir = %q, want %q", got, want)
	}
}
