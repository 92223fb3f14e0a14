// Package cache keeps parsed trees on disk, keyed by the hash of the
// source content and the parse options that produced them.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"minijson/internal/value"
)

// Current schema version - increment when Payload format changes
const schemaVersion uint16 = 1

// ErrCorrupt is returned by Get when an entry cannot be turned back into a tree.
var ErrCorrupt = errors.New("corrupt cache entry")

// Digest identifies a cache entry.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// KeyFor combines the content hash with the depth limit in effect.
// A tree accepted without a limit may be rejected under one, so the
// limit is part of the key.
func KeyFor(content [32]byte, maxDepth int) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var buf [10]byte
	binary.BigEndian.PutUint16(buf[:2], schemaVersion)
	binary.BigEndian.PutUint64(buf[2:], uint64(max(maxDepth, 0)))
	_, _ = h.Write(buf[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Cache хранит деревья на диске. Безопасен для конкурентного доступа.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/app, falling back to ~/.cache/app.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open prepares a cache rooted at dir. An empty dir selects DefaultDir("minijson").
func Open(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir("minijson"); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	// подкаталог "trees" упрощает ручную очистку
	return filepath.Join(c.dir, "trees", key.String()+".mp")
}

// Put serializes root and replaces the entry for key atomically.
func (c *Cache) Put(key Digest, root *value.Group) (err error) {
	if c == nil {
		return nil
	}
	payload, err := encodeTree(root)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	enc := msgpack.NewEncoder(f)
	enc.UseCompactInts(true)
	if err = enc.Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads the tree stored under key. A missing entry or one written by
// another schema version is a miss, not an error.
func (c *Cache) Get(key Digest) (*value.Group, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	if payload.Schema != schemaVersion {
		return nil, false, nil
	}
	root, err := decodeTree(&payload)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", key, err)
	}
	return root, true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовываем, затем удаляем: параллельный Open не увидит полупустой каталог
	trees := filepath.Join(c.dir, "trees")
	old := trees + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(trees, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
