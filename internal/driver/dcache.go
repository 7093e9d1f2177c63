package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"hellomacro/internal/source"
	"hellomacro/internal/version"
)

// Current schema version - increment when CachedFile format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// DiskCache хранит результаты раскрытия файлов на диске, ключ: Digest
// содержимого и настроек. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedFile is the on-disk form of a successful, diagnostic-free FileResult.
type CachedFile struct {
	Schema uint16
	Output []byte
	Sites  []CachedSite
}

// CachedSite keeps offsets only; file ids differ between runs.
type CachedSite struct {
	Label    string
	Start    uint32
	End      uint32
	Disabled bool
	Text     string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "locate cache directory")
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache directory %s", dir)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "expansions", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry; the file is replaced atomically.
func (c *DiskCache) Put(key Digest, entry *CachedFile) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "create cache bucket")
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Wrap(err, "create cache entry")
	}
	tmp := f.Name()
	entry.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "encode cache entry")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "write cache entry")
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "commit cache entry")
	}
	return nil
}

// Get reads an entry. A missing entry or one written by another schema is
// a miss, not an error.
func (c *DiskCache) Get(key Digest, out *CachedFile) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from a hex digest
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrap(err, "open cache entry")
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, errors.Wrap(err, "decode cache entry")
	}
	if out.Schema != diskCacheSchemaVersion {
		*out = CachedFile{}
		return false, nil
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return errors.Wrap(err, "drop cache")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return errors.Wrap(err, "recreate cache directory")
	}
	return os.RemoveAll(old)
}

// cacheKey: H(schema || tool version || content hash || options).
func cacheKey(file *source.File, opts Options) Digest {
	h := sha256.New()
	_ = binary.Write(h, binary.LittleEndian, diskCacheSchemaVersion)
	fmt.Fprintf(h, "%s\x00", version.Version)
	_, _ = h.Write(file.Hash[:])
	fmt.Fprintf(h, "%t\x00%q\x00", opts.MessageSet, opts.Message)
	fmt.Fprintf(h, "%+v\x00%+v\x00%t", opts.Resolver, opts.Layout, opts.ReportDisabled)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
