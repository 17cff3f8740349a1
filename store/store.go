// Package store owns every heavyweight resource of a game: textures, pixel
// surfaces, sprites, animation definitions, fonts, sounds and music, plus a
// bounded cache of derived artifacts such as rasterized text and rotated
// sprites.
//
// A Store is not safe for concurrent use. Loading and clearing must not be
// interleaved with a frame that is being rendered.
package store

import (
	"fmt"
	"sort"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
)

const (
	DefaultSampleRate   = 44100
	DefaultDerivedLimit = 512
)

// DefaultFontSizes are the point sizes created for every loaded font.
var DefaultFontSizes = []int{10, 12, 14, 15, 16, 18, 20, 22, 24, 28, 32, 36, 48, 60, 72}

// Kind identifies a family of named resources.
type Kind string

const (
	KindTexture   Kind = "texture"
	KindSurface   Kind = "surface"
	KindSprite    Kind = "sprite"
	KindAnimation Kind = "animation"
	KindFont      Kind = "font"
	KindSound     Kind = "sound"
	KindMusic     Kind = "music"
)

type Options struct {
	// SampleRate is used to decode sounds and music.
	SampleRate int
	// FontSizes overrides DefaultFontSizes.
	FontSizes []int
	// DerivedLimit bounds the derived cache. Zero means unbounded.
	DerivedLimit int
}

func DefaultOptions() Options {
	return Options{
		SampleRate:   DefaultSampleRate,
		FontSizes:    DefaultFontSizes,
		DerivedLimit: DefaultDerivedLimit,
	}
}

type Store struct {
	opts Options

	renderables arena
	sprites     map[string]sprite.Sprite
	anims       map[string]*anim.Definition
	fonts       map[string]*Font
	fontAliases map[string]string
	sounds      map[string]*Sound
	musics      map[string]*Music

	derived *Derived
}

func New(opts Options) *Store {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if len(opts.FontSizes) == 0 {
		opts.FontSizes = DefaultFontSizes
	}
	if opts.DerivedLimit < 0 {
		opts.DerivedLimit = 0
	}
	s := &Store{
		opts:        opts,
		fontAliases: make(map[string]string),
		derived:     NewDerived(opts.DerivedLimit),
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.renderables.clear()
	s.sprites = make(map[string]sprite.Sprite)
	s.anims = make(map[string]*anim.Definition)
	s.fonts = make(map[string]*Font)
	s.sounds = make(map[string]*Sound)
	s.musics = make(map[string]*Music)
}

func (s *Store) Options() Options {
	return s.opts
}

// Derived returns the cache of derived artifacts. It is emptied by Clear.
func (s *Store) Derived() *Derived {
	return s.derived
}

// Clear releases every owned resource and empties the derived cache. Handles
// issued before Clear no longer resolve. Font aliases survive, since they
// name fonts rather than own them. Clear is idempotent.
func (s *Store) Clear() {
	s.reset()
	s.derived.Clear()
}

// Names returns the sorted names stored under a kind.
func (s *Store) Names(k Kind) []string {
	var names []string
	switch k {
	case KindTexture:
		names = s.renderables.names(func(r sprite.Renderable) bool { return r.Texture != nil })
	case KindSurface:
		names = s.renderables.names(func(r sprite.Renderable) bool { return r.Surface != nil })
	case KindSprite:
		names = keys(s.sprites)
	case KindAnimation:
		names = keys(s.anims)
	case KindFont:
		names = keys(s.fonts)
	case KindSound:
		names = keys(s.sounds)
	case KindMusic:
		names = keys(s.musics)
	}
	sort.Strings(names)
	return names
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func notFound(k Kind, name string) error {
	return fmt.Errorf("store: %s %q: %w", k, name, ErrResourceNotFound)
}

func warnDuplicate(k Kind, name string) {
	common.Logger().Warn("resource already exists, overwriting", "kind", string(k), "name", name)
}

// LogAllSprites logs the sorted sprite names at info level.
func (s *Store) LogAllSprites() {
	s.logAll(KindSprite)
}

// LogAllAnimationDefinitions logs the sorted animation names at info level.
func (s *Store) LogAllAnimationDefinitions() {
	s.logAll(KindAnimation)
}

func (s *Store) logAll(k Kind) {
	log := common.Logger()
	names := s.Names(k)
	log.Info("stored resources", "kind", string(k), "count", len(names))
	for _, n := range names {
		log.Info("  " + n)
	}
}
