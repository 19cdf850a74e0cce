package poster

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// hashChunkSize bounds the memory used while hashing a poster.
const hashChunkSize = 64 * 1024

// Hasher derives the content identity of a file.
type Hasher interface {
	Hash(path string) (string, error)
}

// SHA1Hasher streams a file through SHA-1. The digest is an identity for
// deduplication, not a security boundary; Plex names uploads by it.
type SHA1Hasher struct{}

// Hash returns the lowercase hex SHA-1 of the file at path.
func (SHA1Hasher) Hash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHash, err)
	}
	defer file.Close()
	return HashReader(file)
}

// HashReader returns the lowercase hex SHA-1 of everything read from r.
func HashReader(r io.Reader) (string, error) {
	h := sha1.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrHash, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
