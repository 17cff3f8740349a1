package sprite

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// FlippedSuffix names the horizontally mirrored variant of a picture or sprite.
const FlippedSuffix = "_f"

// Renderable pairs a hardware texture with a CPU pixel buffer. Either may be
// nil; GPU rendering needs the texture and CPU rendering the surface.
type Renderable struct {
	Texture *ebiten.Image
	Surface *image.RGBA
}

func (r Renderable) Empty() bool {
	return r.Texture == nil && r.Surface == nil
}

// Sprite is a clip rectangle inside a spritesheet. It refers to its pixels
// through a Handle and never owns them, so copies are cheap and safe.
type Sprite struct {
	Name       string
	Renderable Handle
	Clip       image.Rectangle
	// SheetWidth is needed to mirror Clip against the flipped sheet.
	SheetWidth int
	Flipped    bool
}

func (s Sprite) Size() (int, int) {
	return s.Clip.Dx(), s.Clip.Dy()
}

func (s Sprite) String() string {
	return fmt.Sprintf("%s[%d,%d %dx%d flipped=%t]", s.Name, s.Clip.Min.X, s.Clip.Min.Y, s.Clip.Dx(), s.Clip.Dy(), s.Flipped)
}

// FlippedName returns the name of the mirrored variant of name.
func FlippedName(name string) string {
	return name + FlippedSuffix
}
