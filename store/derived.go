package store

import (
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spritekit/sprite"
)

// DerivedStats counts cache traffic since creation or the last Clear.
type DerivedStats struct {
	Hits      int
	Misses    int
	Stores    int
	Evictions int
}

type derivedEntry struct {
	r    sprite.Renderable
	node *lruNode
}

// Derived caches artifacts computed from other resources, keyed by a
// fingerprint of every input that affects their pixels. Identical keys
// always hold identical pixels, so an entry is computed at most once while
// it stays cached. With a limit, the least recently used entry is evicted.
type Derived struct {
	limit   int
	entries map[string]*derivedEntry
	order   lruList
	stats   DerivedStats
}

// NewDerived creates a cache holding at most limit entries; zero means
// unbounded.
func NewDerived(limit int) *Derived {
	return &Derived{
		limit:   limit,
		entries: make(map[string]*derivedEntry),
	}
}

// Get returns the entry for key and marks it as recently used.
func (d *Derived) Get(key string) (sprite.Renderable, bool) {
	e, ok := d.entries[key]
	if !ok {
		d.stats.Misses++
		return sprite.Renderable{}, false
	}
	d.stats.Hits++
	d.order.MoveToFront(e.node)
	return e.r, true
}

// Has reports whether key is cached without touching its recency.
func (d *Derived) Has(key string) bool {
	_, ok := d.entries[key]
	return ok
}

// Put stores r under key, replacing any previous entry.
func (d *Derived) Put(key string, r sprite.Renderable) {
	d.stats.Stores++
	if e, ok := d.entries[key]; ok {
		e.r = r
		d.order.MoveToFront(e.node)
		return
	}
	d.entries[key] = &derivedEntry{r: r, node: d.order.PushFront(key)}
	d.evict()
}

// SetTexture attaches a texture to an existing entry, such as one uploaded
// lazily from the entry's surface. It is not counted as a store.
func (d *Derived) SetTexture(key string, tex *ebiten.Image) bool {
	e, ok := d.entries[key]
	if !ok {
		return false
	}
	e.r.Texture = tex
	return true
}

// Surface is a convenience for entries that only need their pixels.
func (d *Derived) Surface(key string) (*image.RGBA, bool) {
	r, ok := d.Get(key)
	if !ok || r.Surface == nil {
		return nil, false
	}
	return r.Surface, true
}

// DropPrefix removes every entry whose key starts with prefix and returns
// how many were removed. Removals are not counted as evictions.
func (d *Derived) DropPrefix(prefix string) int {
	n := 0
	for key, e := range d.entries {
		if strings.HasPrefix(key, prefix) {
			d.order.Remove(e.node)
			delete(d.entries, key)
			n++
		}
	}
	return n
}

func (d *Derived) evict() {
	if d.limit <= 0 {
		return
	}
	for d.order.Len() > d.limit {
		key, ok := d.order.RemoveOldest()
		if !ok {
			return
		}
		delete(d.entries, key)
		d.stats.Evictions++
	}
}

func (d *Derived) Len() int {
	return len(d.entries)
}

func (d *Derived) Limit() int {
	return d.limit
}

func (d *Derived) Stats() DerivedStats {
	return d.stats
}

// Clear drops every entry and resets the counters.
func (d *Derived) Clear() {
	clear(d.entries)
	d.order.Clear()
	d.stats = DerivedStats{}
}
