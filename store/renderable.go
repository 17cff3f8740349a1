package store

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
)

type slot struct {
	name string
	gen  uint32
	live bool
	r    sprite.Renderable
}

// arena tracks renderable slots with generations and free ids. Releasing a
// slot bumps its generation so outstanding handles stop resolving.
type arena struct {
	slots  []slot
	free   []uint32
	byName map[string]uint32
}

func (a *arena) alloc(name string) uint32 {
	var id uint32
	if len(a.free) > 0 {
		id = a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
	} else {
		a.slots = append(a.slots, slot{})
		id = uint32(len(a.slots))
	}
	sl := &a.slots[id-1]
	sl.name = name
	sl.live = true
	sl.r = sprite.Renderable{}
	a.byName[name] = id
	return id
}

// lookup returns the slot id for name, allocating one when absent.
func (a *arena) lookup(name string) uint32 {
	if id, ok := a.byName[name]; ok {
		return id
	}
	return a.alloc(name)
}

func (a *arena) slot(id uint32) *slot {
	if id == 0 || int(id) > len(a.slots) {
		return nil
	}
	return &a.slots[id-1]
}

func (a *arena) handle(id uint32) sprite.Handle {
	return sprite.MakeHandle(id, a.slots[id-1].gen)
}

// release invalidates every handle to id while keeping the slot bound to its
// name.
func (a *arena) release(id uint32) {
	sl := a.slot(id)
	if sl == nil {
		return
	}
	sl.gen++
}

func (a *arena) clear() {
	if a.byName == nil {
		a.byName = make(map[string]uint32)
	}
	a.free = a.free[:0]
	for i := range a.slots {
		sl := &a.slots[i]
		if sl.live {
			sl.gen++
		}
		sl.live = false
		sl.name = ""
		sl.r = sprite.Renderable{}
	}
	for i := len(a.slots); i > 0; i-- {
		a.free = append(a.free, uint32(i))
	}
	clear(a.byName)
}

func (a *arena) names(keep func(sprite.Renderable) bool) []string {
	out := make([]string, 0, len(a.byName))
	for name, id := range a.byName {
		if keep(a.slots[id-1].r) {
			out = append(out, name)
		}
	}
	return out
}

// StoreTexture stores a hardware texture under name. An existing texture of
// the same name is released with a warning.
func (s *Store) StoreTexture(name string, tex *ebiten.Image) {
	id := s.renderables.lookup(name)
	sl := s.renderables.slot(id)
	if sl.r.Texture != nil {
		warnDuplicate(KindTexture, name)
		s.release(id)
	}
	sl.r.Texture = tex
}

// StoreSurface stores a CPU pixel surface under name. An existing surface of
// the same name is released with a warning.
func (s *Store) StoreSurface(name string, surf *image.RGBA) {
	id := s.renderables.lookup(name)
	sl := s.renderables.slot(id)
	if sl.r.Surface != nil {
		warnDuplicate(KindSurface, name)
		s.release(id)
	}
	sl.r.Surface = surf
}

// StoreRenderable stores both halves of a renderable under name and returns
// a handle to it.
func (s *Store) StoreRenderable(name string, r sprite.Renderable) sprite.Handle {
	id := s.renderables.lookup(name)
	sl := s.renderables.slot(id)
	if !sl.r.Empty() {
		warnDuplicate(KindTexture, name)
		s.release(id)
	}
	sl.r = r
	return s.renderables.handle(id)
}

// release invalidates handles to id. Rotations cut from the old pixels are
// dropped with them.
func (s *Store) release(id uint32) {
	s.renderables.release(id)
	s.derived.DropPrefix(common.RotationKeyPrefix)
}

// Texture returns the texture stored under name.
func (s *Store) Texture(name string) (*ebiten.Image, error) {
	id, ok := s.renderables.byName[name]
	if !ok || s.renderables.slot(id).r.Texture == nil {
		return nil, notFound(KindTexture, name)
	}
	return s.renderables.slot(id).r.Texture, nil
}

// Surface returns the pixel surface stored under name.
func (s *Store) Surface(name string) (*image.RGBA, error) {
	id, ok := s.renderables.byName[name]
	if !ok || s.renderables.slot(id).r.Surface == nil {
		return nil, notFound(KindSurface, name)
	}
	return s.renderables.slot(id).r.Surface, nil
}

// Renderable returns a handle to whatever is stored under name.
func (s *Store) Renderable(name string) (sprite.Handle, error) {
	id, ok := s.renderables.byName[name]
	if !ok || s.renderables.slot(id).r.Empty() {
		return 0, notFound(KindTexture, name)
	}
	return s.renderables.handle(id), nil
}

// Resolve returns the renderable a handle points at. Handles issued before
// an overwrite or a Clear fail with ErrStaleHandle.
func (s *Store) Resolve(h sprite.Handle) (sprite.Renderable, error) {
	sl := s.renderables.slot(h.ID())
	if !h.Valid() || sl == nil {
		return sprite.Renderable{}, fmt.Errorf("store: handle %s: %w", h, ErrResourceNotFound)
	}
	if !sl.live || sl.gen != h.Generation() {
		return sprite.Renderable{}, fmt.Errorf("store: handle %s: %w", h, ErrStaleHandle)
	}
	return sl.r, nil
}
