package store

import (
	"fmt"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
)

// StoreSprite stores spr under spr.Name, overwriting with a warning.
func (s *Store) StoreSprite(spr sprite.Sprite) {
	if _, ok := s.sprites[spr.Name]; ok {
		warnDuplicate(KindSprite, spr.Name)
	}
	s.sprites[spr.Name] = spr
}

// Sprite returns a copy of the sprite stored under name.
func (s *Store) Sprite(name string) (sprite.Sprite, error) {
	spr, ok := s.sprites[name]
	if !ok {
		return sprite.Sprite{}, notFound(KindSprite, name)
	}
	return spr, nil
}

// HasSprite reports whether name is stored.
func (s *Store) HasSprite(name string) bool {
	_, ok := s.sprites[name]
	return ok
}

// StoreAnimationDefinition creates an empty definition under name. Unlike
// other kinds, a duplicate name keeps the original definition: it is returned
// together with ErrDuplicateResource so loaders can keep appending to it.
func (s *Store) StoreAnimationDefinition(name string, loop bool) (*anim.Definition, error) {
	if def, ok := s.anims[name]; ok {
		common.Logger().Warn("animation definition already exists, keeping original", "name", name)
		return def, fmt.Errorf("store: %s %q: %w", KindAnimation, name, ErrDuplicateResource)
	}
	def := anim.NewDefinition(name, loop)
	s.anims[name] = def
	return def, nil
}

// AnimationDefinition returns the definition stored under name.
func (s *Store) AnimationDefinition(name string) (*anim.Definition, error) {
	def, ok := s.anims[name]
	if !ok {
		return nil, notFound(KindAnimation, name)
	}
	return def, nil
}

// CreateAnimation builds a playback instance of the named definition. Every
// frame's sprite is copied in; flipped selects the mirrored sprite variants.
func (s *Store) CreateAnimation(name string, flipped bool) (*anim.Animation, error) {
	def, err := s.AnimationDefinition(name)
	if err != nil {
		return nil, err
	}
	a := anim.NewAnimation(def.Name, def.Loop)
	for _, f := range def.Frames() {
		spriteName := f.Sprite
		if flipped {
			spriteName = sprite.FlippedName(spriteName)
		}
		spr, err := s.Sprite(spriteName)
		if err != nil {
			return nil, fmt.Errorf("store: create animation %q: %w", name, err)
		}
		a.AddSprite(f, spr)
	}
	return a, nil
}
