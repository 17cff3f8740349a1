package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
	"github.com/milk9111/spritekit/store"
)

// gpuBackend composites textures into an offscreen target. Flip, scale and
// rotation are all part of one DrawImage call.
type gpuBackend struct {
	store  *store.Store
	target *ebiten.Image
	alpha  uint8
}

func newGPUBackend(st *store.Store, w, h int) *gpuBackend {
	return &gpuBackend{
		store:  st,
		target: ebiten.NewImage(w, h),
		alpha:  255,
	}
}

// imageOptions builds the transform for drawing a w*h source with p. The
// source is mirrored inside its own box, scaled to the placement size,
// rotated about the placement center and moved into place.
func imageOptions(w, h int, p Params, alpha uint8) *ebiten.DrawImageOptions {
	pl := common.Place(p.X, p.Y, w, h, p.ScaleX, p.ScaleY, p.Centered)
	op := &ebiten.DrawImageOptions{}
	if p.Flipped {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(w), 0)
	}
	if w > 0 && h > 0 {
		op.GeoM.Scale(float64(pl.W)/float64(w), float64(pl.H)/float64(h))
	}
	if angle := common.NormalizeAngle(p.Angle); angle != 0 {
		op.GeoM.Translate(-float64(pl.W)/2, -float64(pl.H)/2)
		op.GeoM.Rotate(angle * math.Pi / 180)
		op.GeoM.Translate(float64(pl.W)/2, float64(pl.H)/2)
	}
	op.GeoM.Translate(float64(pl.X), float64(pl.Y))
	op.ColorScale.ScaleAlpha(float32(alpha) / 255)
	op.Filter = ebiten.FilterNearest
	return op
}

func (g *gpuBackend) drawSprite(spr sprite.Sprite, r sprite.Renderable, p Params) error {
	if r.Texture == nil {
		return errorf("sprite %q has no texture", spr.Name)
	}
	return g.drawTexture(r.Texture, spr.Clip, p)
}

func (g *gpuBackend) drawTexture(tex *ebiten.Image, clip image.Rectangle, p Params) error {
	src := tex
	if clip != tex.Bounds() {
		sub, ok := tex.SubImage(clip).(*ebiten.Image)
		if !ok {
			return errorf("bad clip %v", clip)
		}
		src = sub
	}
	g.target.DrawImage(src, imageOptions(clip.Dx(), clip.Dy(), p, g.alpha))
	return nil
}

func (g *gpuBackend) drawSurface(*image.RGBA, image.Rectangle, Params) error {
	return ErrModeMismatch
}

// drawText uploads the cached text surface on first use and keeps the
// texture in the same cache entry.
func (g *gpuBackend) drawText(key string, r sprite.Renderable, p Params) error {
	tex := r.Texture
	if tex == nil {
		if r.Surface == nil {
			return errorf("text %q has no pixels", key)
		}
		tex = ebiten.NewImageFromImage(r.Surface)
		g.store.Derived().SetTexture(key, tex)
	}
	return g.drawTexture(tex, tex.Bounds(), p)
}

func (g *gpuBackend) fillRect(rect image.Rectangle, c color.Color) {
	vector.FillRect(g.target, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), c, false)
}

func (g *gpuBackend) fillCircle(x, y, radius int, c color.Color, filled bool) {
	if filled {
		vector.FillCircle(g.target, float32(x), float32(y), float32(radius), c, true)
		return
	}
	vector.StrokeCircle(g.target, float32(x), float32(y), float32(radius), 1, c, true)
}

func (g *gpuBackend) clear(bg color.Color) {
	g.target.Fill(bg)
}

func (g *gpuBackend) present(screen *ebiten.Image, rotation float64) {
	presentTarget(screen, g.target, rotation)
}

func (g *gpuBackend) setAlpha(a uint8) {
	g.alpha = a
}

// presentTarget copies the intermediate target onto the display, rotated
// about its center.
func presentTarget(screen, target *ebiten.Image, rotation float64) {
	screen.Clear()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	tw, th := target.Bounds().Dx(), target.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(tw)/2, -float64(th)/2)
	if tw > 0 && th > 0 {
		op.GeoM.Scale(float64(sw)/float64(tw), float64(sh)/float64(th))
	}
	if angle := common.NormalizeAngle(rotation); angle != 0 {
		op.GeoM.Rotate(angle * math.Pi / 180)
	}
	op.GeoM.Translate(float64(sw)/2, float64(sh)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(target, op)
}
