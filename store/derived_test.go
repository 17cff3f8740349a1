package store

import (
	"image"
	"testing"

	"github.com/milk9111/spritekit/sprite"
)

func TestDerivedLRU(t *testing.T) {
	d := NewDerived(2)
	put := func(key string) {
		d.Put(key, sprite.Renderable{Surface: image.NewRGBA(image.Rect(0, 0, 1, 1))})
	}

	put("a")
	put("b")
	if _, ok := d.Get("a"); !ok {
		t.Fatalf("expected a cached")
	}
	put("c")

	if d.Has("b") {
		t.Fatalf("b was least recently used and should be evicted")
	}
	if !d.Has("a") || !d.Has("c") {
		t.Fatalf("expected a and c cached")
	}
	st := d.Stats()
	if st.Stores != 3 || st.Evictions != 1 || st.Hits != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDerivedUnbounded(t *testing.T) {
	d := NewDerived(0)
	for i := 0; i < 100; i++ {
		d.Put(string(rune('a'+i%26))+string(rune('0'+i/26)), sprite.Renderable{})
	}
	if d.Len() != 100 {
		t.Fatalf("expected 100 entries, got %d", d.Len())
	}
	d.Clear()
	if d.Len() != 0 || d.Stats() != (DerivedStats{}) {
		t.Fatalf("clear should empty the cache")
	}
}

func TestDerivedDropPrefix(t *testing.T) {
	d := NewDerived(0)
	for _, k := range []string{"text|a", "text|b", "rot|a"} {
		d.Put(k, sprite.Renderable{})
	}
	if n := d.DropPrefix("text|"); n != 2 {
		t.Fatalf("dropped %d, want 2", n)
	}
	if d.Len() != 1 || !d.Has("rot|a") {
		t.Fatalf("expected only rot|a left, have %d entries", d.Len())
	}
	if d.Stats().Evictions != 0 {
		t.Fatalf("drops should not count as evictions")
	}
	d.Put("rot|b", sprite.Renderable{})
	if d.Len() != 2 {
		t.Fatalf("list broken after drop: len %d", d.Len())
	}
}

func TestStoreClearEmptiesDerived(t *testing.T) {
	s := New(DefaultOptions())
	s.Derived().Put("k", sprite.Renderable{})
	s.Clear()
	if s.Derived().Has("k") {
		t.Fatalf("derived cache should be cleared with the store")
	}
}
