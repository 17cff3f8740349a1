// Package render draws sprites, animations, text and shapes through one of
// two backends chosen when the Engine is built: CPU mode composites pixels
// into an *image.RGBA, GPU mode composites ebiten textures into an offscreen
// target. Both present through the same intermediate path.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
	"github.com/milk9111/spritekit/store"
)

type Mode int

const (
	CPU Mode = iota
	GPU
)

func (m Mode) String() string {
	switch m {
	case CPU:
		return "cpu"
	case GPU:
		return "gpu"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "cpu" or "gpu".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "cpu", "CPU":
		return CPU, nil
	case "gpu", "GPU", "":
		return GPU, nil
	}
	return GPU, fmt.Errorf("render: unknown mode %q", s)
}

var (
	// ErrRender is returned when a draw has nothing it can composite, such
	// as a sprite whose pixels are missing for the active mode or whose
	// handle went stale.
	ErrRender = errors.New("render error")

	// ErrAnimationUninitialized is returned when drawing an animation with
	// no frames.
	ErrAnimationUninitialized = errors.New("animation not initialized")

	// ErrModeMismatch is returned for raw texture draws in CPU mode and raw
	// surface draws in GPU mode.
	ErrModeMismatch = fmt.Errorf("%w: wrong mode for draw", ErrRender)
)

// Params places a draw. A zero scale is read as 1. Angle is in degrees,
// clockwise.
type Params struct {
	X, Y           int
	ScaleX, ScaleY float64
	Angle          float64
	Centered       bool
	Flipped        bool
}

// TextParams places a text draw.
type TextParams struct {
	FontName string
	Size     int
	Outline  bool
	X, Y     int
	Color    color.Color
	Centered bool
}

const (
	DefaultFontName = "default"
	DefaultFontSize = 16
)

type Options struct {
	Width, Height int
	Background    color.Color
}

// backend is implemented once per Mode.
type backend interface {
	drawSprite(spr sprite.Sprite, r sprite.Renderable, p Params) error
	drawTexture(tex *ebiten.Image, clip image.Rectangle, p Params) error
	drawSurface(surf *image.RGBA, clip image.Rectangle, p Params) error
	drawText(key string, r sprite.Renderable, p Params) error
	fillRect(rect image.Rectangle, c color.Color)
	fillCircle(x, y, radius int, c color.Color, filled bool)
	clear(bg color.Color)
	present(screen *ebiten.Image, rotation float64)
	setAlpha(a uint8)
}

type Engine struct {
	mode    Mode
	store   *store.Store
	backend backend

	width, height int
	background    color.Color
	alpha         uint8
	rotation      float64
}

// NewEngine builds an engine in the given mode. The mode cannot change
// afterwards.
func NewEngine(mode Mode, st *store.Store, opts Options) *Engine {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	e := &Engine{
		mode:       mode,
		store:      st,
		width:      opts.Width,
		height:     opts.Height,
		background: opts.Background,
		alpha:      255,
	}
	switch mode {
	case CPU:
		e.backend = newCPUBackend(st, opts.Width, opts.Height)
	default:
		e.mode = GPU
		e.backend = newGPUBackend(st, opts.Width, opts.Height)
	}
	common.Logger().Debug("render engine created", "mode", e.mode.String(), "width", opts.Width, "height", opts.Height)
	e.ClearScreen()
	return e
}

func (e *Engine) Mode() Mode              { return e.mode }
func (e *Engine) Store() *store.Store     { return e.store }
func (e *Engine) RenderSize() (int, int)  { return e.width, e.height }
func (e *Engine) GlobalAlpha() uint8      { return e.alpha }
func (e *Engine) RenderRotation() float64 { return e.rotation }

// SetGlobalAlpha modulates every following texture and surface draw.
func (e *Engine) SetGlobalAlpha(a uint8) {
	e.alpha = a
	e.backend.setAlpha(a)
}

func (e *Engine) SetBackgroundColor(c color.Color) {
	if c == nil {
		c = color.Black
	}
	e.background = c
}

// SetRenderRotation rotates the whole frame at presentation time.
func (e *Engine) SetRenderRotation(deg float64) {
	e.rotation = deg
}

// CreateTexture uploads a pixel surface as a texture.
func (e *Engine) CreateTexture(surf *image.RGBA) *ebiten.Image {
	return ebiten.NewImageFromImage(surf)
}

// DrawSprite draws spr's clip with the given placement.
func (e *Engine) DrawSprite(spr sprite.Sprite, p Params) error {
	r, err := e.store.Resolve(spr.Renderable)
	if err != nil {
		return fmt.Errorf("render: sprite %q: %w: %w", spr.Name, ErrRender, err)
	}
	if r.Empty() {
		return fmt.Errorf("render: sprite %q has no texture or surface: %w", spr.Name, ErrRender)
	}
	return e.backend.drawSprite(spr, r, p)
}

// DrawAnimation draws the current frame of a.
func (e *Engine) DrawAnimation(a *anim.Animation, p Params) error {
	if !a.IsInitialized() {
		name := "<nil>"
		if a != nil {
			name = a.String()
		}
		common.Logger().Error("animation has not been initialized", "animation", name)
		return fmt.Errorf("render: animation %s: %w", name, ErrAnimationUninitialized)
	}
	return e.DrawSprite(a.CurrentSprite(), p)
}

// DrawTexture draws a whole texture. GPU mode only.
func (e *Engine) DrawTexture(tex *ebiten.Image, p Params) error {
	if tex == nil {
		return fmt.Errorf("render: nil texture: %w", ErrRender)
	}
	return e.backend.drawTexture(tex, tex.Bounds(), p)
}

// DrawSurface draws a whole pixel surface. CPU mode only.
func (e *Engine) DrawSurface(surf *image.RGBA, p Params) error {
	if surf == nil {
		return fmt.Errorf("render: nil surface: %w", ErrRender)
	}
	return e.backend.drawSurface(surf, surf.Bounds(), p)
}

// DrawText rasterizes text once per distinct (text, font, size, outline,
// color) and draws the cached result.
func (e *Engine) DrawText(text string, tp TextParams) error {
	if tp.FontName == "" {
		tp.FontName = DefaultFontName
	}
	if tp.Size <= 0 {
		tp.Size = DefaultFontSize
	}
	if tp.Color == nil {
		tp.Color = color.Black
	}
	key := common.TextKey(text, e.store.ResolveFontName(tp.FontName), tp.Size, tp.Outline, tp.Color)
	d := e.store.Derived()
	r, ok := d.Get(key)
	if !ok {
		f, err := e.store.Font(tp.FontName, tp.Size, tp.Outline)
		if err != nil {
			return fmt.Errorf("render: text: %w", err)
		}
		r = sprite.Renderable{Surface: rasterizeText(f, text, tp.Color)}
		d.Put(key, r)
	}
	return e.backend.drawText(key, r, Params{X: tp.X, Y: tp.Y, Centered: tp.Centered})
}

// DrawRect fills rect with c.
func (e *Engine) DrawRect(rect image.Rectangle, c color.Color) {
	e.backend.fillRect(rect.Canon(), c)
}

// DrawCircle draws a filled disc or a one pixel ring.
func (e *Engine) DrawCircle(x, y, radius int, c color.Color, filled bool) {
	if radius <= 0 {
		return
	}
	e.backend.fillCircle(x, y, radius, c, filled)
}

// ClearScreen resets the intermediate target to the background color.
func (e *Engine) ClearScreen() {
	e.backend.clear(e.background)
}

// RenderIntermediate presents the composed frame onto screen, rotated by
// the render rotation. In CPU mode the pixel buffer is first pushed to its
// shadow texture.
func (e *Engine) RenderIntermediate(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	e.backend.present(screen, e.rotation)
}
