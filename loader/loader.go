// Package loader decodes asset files into a store: pictures with their
// flipped variants, sprite sheets, animation definitions, fonts, sounds and
// music, either one at a time or from a YAML manifest.
package loader

import (
	"fmt"
	"image"
	"io/fs"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
	"github.com/milk9111/spritekit/store"
)

// TextureCreator uploads pixels to the GPU. render.Engine implements it.
type TextureCreator interface {
	CreateTexture(*image.RGBA) *ebiten.Image
}

type Loader struct {
	store   *store.Store
	creator TextureCreator
}

// New returns a loader filling st. With a nil creator no textures are made
// and only CPU rendering can draw the loaded sprites.
func New(st *store.Store, creator TextureCreator) *Loader {
	return &Loader{store: st, creator: creator}
}

func (l *Loader) Store() *store.Store {
	return l.store
}

// LoadPicture decodes path from fsys and stores it as a picture.
func (l *Loader) LoadPicture(name, path string, fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("loader: picture %q: %w", name, err)
	}
	img, err := decodeImage(path, data)
	if err != nil {
		return fmt.Errorf("loader: picture %q: %w", name, err)
	}
	l.AddPicture(name, img)
	return nil
}

// AddPicture stores img under name: a renderable pairing the texture with
// the surface, a renderable pairing the same texture with a mirrored surface
// under name+"_f", and a full-image sprite for each.
func (l *Loader) AddPicture(name string, img image.Image) {
	surf := toRGBA(img)
	flipped := flipHorizontal(surf)
	var tex *ebiten.Image
	if l.creator != nil {
		tex = l.creator.CreateTexture(surf)
	}

	fname := sprite.FlippedName(name)
	h := l.store.StoreRenderable(name, sprite.Renderable{Texture: tex, Surface: surf})
	hf := l.store.StoreRenderable(fname, sprite.Renderable{Texture: tex, Surface: flipped})

	b := surf.Bounds()
	l.store.StoreSprite(sprite.Sprite{Name: name, Renderable: h, Clip: b, SheetWidth: b.Dx()})
	l.store.StoreSprite(sprite.Sprite{Name: fname, Renderable: hf, Clip: b, SheetWidth: b.Dx(), Flipped: true})
	common.Logger().Debug("loaded picture", "name", name, "width", b.Dx(), "height", b.Dy())
}

// LoadSpriteSheet cuts n w*h sprites out of a loaded picture, starting at
// cell start and counting left to right then top to bottom. Sprites are
// named base_0, base_1, ... with a base_i_f twin for each.
func (l *Loader) LoadSpriteSheet(picture, base string, start, n, w, h int) error {
	if w <= 0 || h <= 0 || n < 0 || start < 0 {
		return fmt.Errorf("loader: sheet %q: bad cell layout %dx%d start=%d n=%d", base, w, h, start, n)
	}
	pic, err := l.store.Sprite(picture)
	if err != nil {
		return fmt.Errorf("loader: sheet %q: %w", base, err)
	}
	picF, err := l.store.Sprite(sprite.FlippedName(picture))
	if err != nil {
		return fmt.Errorf("loader: sheet %q: %w", base, err)
	}
	sheetW, sheetH := pic.Size()
	cols := sheetW / w
	if cols == 0 {
		return fmt.Errorf("loader: sheet %q: cell width %d exceeds picture width %d", base, w, sheetW)
	}
	for i := 0; i < n; i++ {
		cell := start + i
		clip := image.Rect((cell%cols)*w, (cell/cols)*h, (cell%cols)*w+w, (cell/cols)*h+h)
		if clip.Max.Y > sheetH {
			return fmt.Errorf("loader: sheet %q: cell %d is outside %q", base, cell, picture)
		}
		name := base + "_" + strconv.Itoa(i)
		l.store.StoreSprite(sprite.Sprite{Name: name, Renderable: pic.Renderable, Clip: clip, SheetWidth: sheetW})
		l.store.StoreSprite(sprite.Sprite{Name: sprite.FlippedName(name), Renderable: picF.Renderable, Clip: clip, SheetWidth: sheetW, Flipped: true})
	}
	return nil
}

// LoadSprite stores a single clip of a loaded picture. Single sprites have no
// flipped twin.
func (l *Loader) LoadSprite(picture, name string, clip image.Rectangle) error {
	pic, err := l.store.Sprite(picture)
	if err != nil {
		return fmt.Errorf("loader: sprite %q: %w", name, err)
	}
	if !clip.In(pic.Clip) {
		return fmt.Errorf("loader: sprite %q: clip %v is outside %q", name, clip, picture)
	}
	l.store.StoreSprite(sprite.Sprite{Name: name, Renderable: pic.Renderable, Clip: clip, SheetWidth: pic.SheetWidth})
	return nil
}

// DefineAnimation stores a definition with the given frames. Redefining a
// name appends nothing and returns store.ErrDuplicateResource.
func (l *Loader) DefineAnimation(name string, loop bool, frames ...anim.Frame) error {
	def, err := l.store.StoreAnimationDefinition(name, loop)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	for _, f := range frames {
		def.AddFrame(f.Sprite, f.Duration)
	}
	return nil
}

func (l *Loader) LoadSound(name, path string, fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("loader: sound %q: %w", name, err)
	}
	return l.store.LoadSound(name, path, data)
}

func (l *Loader) LoadMusic(name, path string, fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("loader: music %q: %w", name, err)
	}
	return l.store.LoadMusic(name, path, data)
}

func (l *Loader) LoadFont(name, path string, fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("loader: font %q: %w", name, err)
	}
	return l.store.LoadFont(name, data)
}
