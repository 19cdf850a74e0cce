package hashcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"postersync/internal/logging"
	"postersync/internal/poster"
)

var bucketDigests = []byte("digests")

// defaultRacyWindow covers coarse filesystem timestamps: a file changed this
// close to its hashing could change again without moving ctime.
const defaultRacyWindow = 2 * time.Second

// Entry is the stored digest of one file. Size and mtime alone can be
// preserved across a rewrite (cp -p, rsync -t), so the inode change time
// and inode number are part of the identity too.
type Entry struct {
	Hash       string    `json:"hash"`
	Size       int64     `json:"size"`
	ModTime    int64     `json:"mod_time"`    // UnixNano
	ChangeTime int64     `json:"change_time"` // UnixNano
	Inode      uint64    `json:"inode"`
	CachedAt   time.Time `json:"cached_at"`
}

func newEntry(hash string, info os.FileInfo, cachedAt time.Time) Entry {
	ctime, inode, _ := changeStamp(info)
	return Entry{
		Hash:       hash,
		Size:       info.Size(),
		ModTime:    info.ModTime().UnixNano(),
		ChangeTime: ctime,
		Inode:      inode,
		CachedAt:   cachedAt,
	}
}

// matches reports whether the entry still describes the file. Entries cached
// within racyWindow of the file's last change are not trusted.
func (e Entry) matches(info os.FileInfo, racyWindow time.Duration) bool {
	ctime, inode, ok := changeStamp(info)
	if !ok || e.Hash == "" {
		return false
	}
	if e.Size != info.Size() || e.ModTime != info.ModTime().UnixNano() {
		return false
	}
	if e.ChangeTime != ctime || e.Inode != inode {
		return false
	}
	return e.CachedAt.UnixNano()-ctime >= racyWindow.Nanoseconds()
}

// Cache wraps a poster.Hasher and reuses stored digests for unchanged files.
type Cache struct {
	db     *bolt.DB
	inner  poster.Hasher
	logger *slog.Logger

	racyWindow time.Duration

	mu     sync.Mutex
	hits   int
	misses int
}

var _ poster.Hasher = (*Cache)(nil)

// Open opens (or creates) the cache database at path. A nil inner hasher
// defaults to poster.SHA1Hasher.
func Open(path string, inner poster.Hasher, logger *slog.Logger) (*Cache, error) {
	if inner == nil {
		inner = poster.SHA1Hasher{}
	}
	logger = logging.NewComponentLogger(logger, "hashcache")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open hash cache: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDigests)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init hash cache: %w", err)
	}

	logger.Debug("opened hash cache", logging.String("path", path))
	return &Cache{db: db, inner: inner, logger: logger, racyWindow: defaultRacyWindow}, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Hash returns the digest of the file at path, computing and storing it
// when no valid entry exists. Cache read or write failures fall back to the
// inner hasher; they never fail the hash itself.
func (c *Cache) Hash(path string) (string, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", poster.ErrHash, err)
	}

	if entry, ok := c.Lookup(key); ok && entry.matches(info, c.racyWindow) {
		c.count(true)
		return entry.Hash, nil
	}
	c.count(false)

	hash, err := c.inner.Hash(path)
	if err != nil {
		return "", err
	}

	entry := newEntry(hash, info, time.Now().UTC())
	if err := c.Store(key, entry); err != nil {
		logging.WarnWithContext(c.logger, "failed to store poster digest", "hashcache_store_failed",
			logging.String("path", key),
			logging.Error(err),
			logging.String(logging.FieldImpact, "poster will be rehashed next run"))
	}
	return hash, nil
}

// Lookup returns the stored entry for key.
func (c *Cache) Lookup(key string) (Entry, bool) {
	var (
		entry Entry
		found bool
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketDigests).Get([]byte(key))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		c.logger.Debug("discarding unreadable digest entry", logging.String("path", key), logging.Error(err))
		return Entry{}, false
	}
	return entry, found
}

// Store writes entry under key.
func (c *Cache) Store(key string, entry Entry) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDigests).Put([]byte(key), data)
	})
}

// Count returns the number of stored entries.
func (c *Cache) Count() int {
	var n int
	_ = c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketDigests).Stats().KeyN
		return nil
	})
	return n
}

// Prune removes entries whose files no longer exist and returns how many
// were dropped.
func (c *Cache) Prune() (int, error) {
	var stale [][]byte
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDigests).ForEach(func(k, _ []byte) error {
			if _, err := os.Stat(string(k)); errors.Is(err, os.ErrNotExist) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("scan hash cache: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketDigests)
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune hash cache: %w", err)
	}
	c.logger.Debug("pruned hash cache", logging.Int("removed", len(stale)))
	return len(stale), nil
}

// Stats reports cache hits and misses since Open.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache) count(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}
