package store

import (
	"fmt"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/milk9111/spritekit/common"
)

// Font is one face of a loaded font at a fixed size. Outline faces are
// rasterized with a one pixel border around each glyph.
type Font struct {
	Name    string
	Size    int
	Outline bool
	Face    font.Face
}

func fontKey(name string, size int, outline bool) string {
	key := name + strconv.Itoa(size)
	if outline {
		key += "o"
	}
	return key
}

// LoadFont parses TrueType or OpenType data and stores a plain and an outline
// face for every configured size under name.
func (s *Store) LoadFont(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("store: parse font %q: %w", name, err)
	}
	for _, size := range s.opts.FontSizes {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("store: font %q size %d: %w", name, size, err)
		}
		s.StoreFont(name, size, false, face)
		s.StoreFont(name, size, true, face)
	}
	return nil
}

// StoreFont stores a single face, overwriting with a warning.
func (s *Store) StoreFont(name string, size int, outline bool, face font.Face) {
	key := fontKey(name, size, outline)
	if _, ok := s.fonts[key]; ok {
		warnDuplicate(KindFont, key)
		s.derived.DropPrefix(common.TextKeyPrefix)
	}
	s.fonts[key] = &Font{Name: name, Size: size, Outline: outline, Face: face}
}

// CreateFontAlias makes alias resolve to a loaded font name.
func (s *Store) CreateFontAlias(alias, loaded string) {
	if prev, ok := s.fontAliases[alias]; ok {
		common.Logger().Warn("font alias already exists, overwriting", "alias", alias, "was", prev, "now", loaded)
	}
	s.fontAliases[alias] = loaded
}

// ResolveFontName follows the alias table once.
func (s *Store) ResolveFontName(name string) string {
	if inner, ok := s.fontAliases[name]; ok {
		return inner
	}
	return name
}

// Font returns the face loaded for the alias-resolved name at exactly size.
func (s *Store) Font(name string, size int, outline bool) (*Font, error) {
	key := fontKey(s.ResolveFontName(name), size, outline)
	f, ok := s.fonts[key]
	if !ok {
		return nil, notFound(KindFont, key)
	}
	return f, nil
}
