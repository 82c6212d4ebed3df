package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sable/internal/diag"
	"sable/internal/project"
	"sable/internal/source"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest keys one lowering input.
type Digest [32]byte

// UnitDigest hashes everything that determines a unit's lowered output:
// the schema version, the unit name and the feature gates in effect.
func UnitDigest(name string, feats project.Features) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(cacheSchemaVersion >> 8), byte(cacheSchemaVersion)})
	_, _ = h.Write([]byte(name))
	flags := byte(0)
	if feats.ImplicitRegions {
		flags |= 1
	}
	if feats.Placement {
		flags |= 2
	}
	_, _ = h.Write([]byte{flags})
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Cache stores lowering outcomes by input digest on disk.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload stores the cached outcome of lowering one unit: its
// diagnostics, byte for byte, plus table sizes for reporting.
type CachePayload struct {
	// Schema version for safe invalidation when the format changes
	Schema uint16

	Name   string
	Digest Digest

	Diags []DiagRecord

	// Table sizes of the lowered unit
	Items  int
	Bodies int
	Defs   int
}

// DiagRecord is one diagnostic in cache form.
type DiagRecord struct {
	Severity uint8
	Code     uint16
	Message  string
	File     uint32
	Start    uint32
	End      uint32
	Notes    []NoteRecord
	Fixes    []FixRecord
}

// NoteRecord is one diagnostic note in cache form.
type NoteRecord struct {
	File  uint32
	Start uint32
	End   uint32
	Msg   string
}

// FixRecord is one suggested fix in cache form.
type FixRecord struct {
	Title string
	Edits []EditRecord
}

// EditRecord is one fix edit in cache form.
type EditRecord struct {
	File    uint32
	Start   uint32
	End     uint32
	NewText string
}

// OpenCache initializes and returns a disk cache at the standard location.
func OpenCache(app string) (*Cache, error) {
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
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "units", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *Cache) Put(key Digest, payload *CachePayload) error {
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

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *Cache) Get(key Digest, out *CachePayload) (bool, error) {
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
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
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

// recordDiagnostics converts a bag into cache records.
func recordDiagnostics(bag *diag.Bag) []DiagRecord {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	records := make([]DiagRecord, 0, bag.Len())
	for _, d := range bag.Items() {
		rec := DiagRecord{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			File:     uint32(d.Primary.File),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			rec.Notes = append(rec.Notes, NoteRecord{
				File:  uint32(n.Span.File),
				Start: n.Span.Start,
				End:   n.Span.End,
				Msg:   n.Msg,
			})
		}
		for _, fx := range d.Fixes {
			fr := FixRecord{Title: fx.Title}
			for _, e := range fx.Edits {
				fr.Edits = append(fr.Edits, EditRecord{
					File:    uint32(e.Span.File),
					Start:   e.Span.Start,
					End:     e.Span.End,
					NewText: e.NewText,
				})
			}
			rec.Fixes = append(rec.Fixes, fr)
		}
		records = append(records, rec)
	}
	return records
}

// Bag reconstructs the cached diagnostics.
func (p *CachePayload) Bag() *diag.Bag {
	bag := diag.NewBag(len(p.Diags) + 1)
	for _, rec := range p.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(rec.Severity),
			Code:     diag.Code(rec.Code),
			Message:  rec.Message,
			Primary: source.Span{
				File:  source.FileID(rec.File),
				Start: rec.Start,
				End:   rec.End,
			},
		}
		for _, n := range rec.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: source.FileID(n.File), Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		for _, fx := range rec.Fixes {
			f := diag.Fix{Title: fx.Title}
			for _, e := range fx.Edits {
				f.Edits = append(f.Edits, diag.FixEdit{
					Span:    source.Span{File: source.FileID(e.File), Start: e.Start, End: e.End},
					NewText: e.NewText,
				})
			}
			d.Fixes = append(d.Fixes, f)
		}
		bag.Add(d)
	}
	return bag
}
