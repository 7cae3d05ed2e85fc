package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rlint/internal/diag"
	"rlint/internal/project"
	"rlint/internal/source"
)

// Bump when CachePayload changes shape; old entries are silently ignored.
const cacheSchemaVersion uint16 = 1

// DiskCache stores per-file check results keyed by content+config digest.
// Thread-safe for concurrent workers.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedFix mirrors diag.Fix with bare offsets instead of spans: the FileID
// a span carries is only meaningful inside one process.
type CachedFix struct {
	Title         string
	Start         uint32
	End           uint32
	NewText       string
	Skip          bool
	Applicability uint8
}

// CachedDiag is the serializable form of one diagnostic.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Fix      *CachedFix
}

// CachePayload is everything a cache hit restores for one file.
type CachePayload struct {
	Schema uint16
	Diags  []CachedDiag
}

func newCachePayload(bag *diag.Bag) *CachePayload {
	payload := &CachePayload{Schema: cacheSchemaVersion}
	for _, d := range bag.Items() {
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		if d.Fix != nil {
			cd.Fix = &CachedFix{
				Title:         d.Fix.Title,
				Start:         d.Fix.Span.Start,
				End:           d.Fix.Span.End,
				NewText:       d.Fix.NewText,
				Skip:          d.Fix.Skip,
				Applicability: uint8(d.Fix.Applicability),
			}
		}
		payload.Diags = append(payload.Diags, cd)
	}
	return payload
}

// toBag rematerializes the payload against the current FileID, or nil for a
// stale schema.
func (p *CachePayload) toBag(fileID source.FileID, maxDiagnostics int) *diag.Bag {
	if p.Schema != cacheSchemaVersion {
		return nil
	}
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range p.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.Start, End: cd.End},
		}
		if cd.Fix != nil {
			d.Fix = &diag.Fix{
				Title:         cd.Fix.Title,
				Span:          source.Span{File: fileID, Start: cd.Fix.Start, End: cd.Fix.End},
				NewText:       cd.Fix.NewText,
				Skip:          cd.Fix.Skip,
				Applicability: diag.Applicability(cd.Fix.Applicability),
			}
		}
		bag.Add(d)
	}
	return bag
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes and writes a payload, replacing atomically via rename.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload for key; ok is false on a miss.
func (c *DiskCache) Get(key project.Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
