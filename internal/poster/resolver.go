package poster

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// probeSuffixes is the fixed probe order. A bare title beats the
// " Collection" variant of the same extension.
var probeSuffixes = []string{
	".jpg",
	" Collection.jpg",
	".png",
	" Collection.png",
	".jpeg",
	" Collection.jpeg",
}

// Resolver locates local poster files below Root.
type Resolver struct {
	Root string
}

// NewResolver returns a Resolver rooted at root.
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root}
}

// ScopeDir returns the directory holding the posters of scope.
func (r *Resolver) ScopeDir(scope Scope) string {
	return filepath.Join(r.Root, scope.DirName())
}

// Resolve returns the first existing poster for title within scope. A
// missing poster is reported with ok=false and a nil error.
func (r *Resolver) Resolve(scope Scope, title string) (path string, ok bool, err error) {
	base := filepath.Join(r.ScopeDir(scope), title)
	for _, suffix := range probeSuffixes {
		candidate := base + suffix
		info, statErr := os.Stat(candidate)
		switch {
		case statErr == nil:
			if info.Mode().IsRegular() {
				return candidate, true, nil
			}
		case errors.Is(statErr, fs.ErrNotExist), errors.Is(statErr, fs.ErrInvalid):
		default:
			return "", false, fmt.Errorf("%w: stat %s: %v", ErrResolve, candidate, statErr)
		}
	}
	return "", false, nil
}
