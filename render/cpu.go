package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
	"github.com/milk9111/spritekit/store"
)

// cpuBackend composites into a pixel buffer that is pushed to a shadow
// texture once per frame. Flips read from pre-flipped spritesheets and
// rotations are synthesized once and cached in the store's derived cache.
type cpuBackend struct {
	store  *store.Store
	screen *image.RGBA
	shadow *ebiten.Image
	alpha  uint8
}

func newCPUBackend(st *store.Store, w, h int) *cpuBackend {
	return &cpuBackend{
		store:  st,
		screen: image.NewRGBA(image.Rect(0, 0, w, h)),
		alpha:  255,
	}
}

func (c *cpuBackend) options() *draw.Options {
	if c.alpha == 255 {
		return nil
	}
	return &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: c.alpha})}
}

// blit copies clip of src into dst, scaling with nearest neighbour sampling
// when the sizes differ.
func (c *cpuBackend) blit(src image.Image, clip, dst image.Rectangle) {
	if dst.Empty() || clip.Empty() {
		return
	}
	if dst.Size() == clip.Size() {
		draw.Copy(c.screen, dst.Min, src, clip, draw.Over, c.options())
		return
	}
	draw.NearestNeighbor.Scale(c.screen, dst, src, clip, draw.Over, c.options())
}

// counterpart returns the variant of spr whose pixels match the requested
// flip, so the clip can be mirrored against a pre-flipped sheet.
func (c *cpuBackend) counterpart(spr sprite.Sprite, flipped bool) (sprite.Sprite, sprite.Renderable, error) {
	name := spr.Name
	if flipped {
		name = sprite.FlippedName(name)
	} else {
		name = name[:len(name)-len(sprite.FlippedSuffix)]
	}
	other, err := c.store.Sprite(name)
	if err != nil {
		return sprite.Sprite{}, sprite.Renderable{}, errorf("no %s variant of sprite %q", flipLabel(flipped), spr.Name)
	}
	r, err := c.store.Resolve(other.Renderable)
	if err != nil {
		return sprite.Sprite{}, sprite.Renderable{}, errorf("sprite %q: %v", other.Name, err)
	}
	return other, r, nil
}

func flipLabel(flipped bool) string {
	if flipped {
		return "flipped"
	}
	return "unflipped"
}

func (c *cpuBackend) drawSprite(spr sprite.Sprite, r sprite.Renderable, p Params) error {
	if p.Flipped != spr.Flipped && (p.Flipped || hasFlippedSuffix(spr.Name)) {
		var err error
		if spr, r, err = c.counterpart(spr, p.Flipped); err != nil {
			return err
		}
	}
	if r.Surface == nil {
		return errorf("sprite %q has no surface", spr.Name)
	}

	w, h := spr.Size()
	clip := spr.Clip
	if p.Flipped {
		clip = common.FlipClip(clip, spr.SheetWidth)
	}

	if common.NormalizeAngle(p.Angle) == 0 {
		c.blit(r.Surface, clip, common.Place(p.X, p.Y, w, h, p.ScaleX, p.ScaleY, p.Centered).Rect())
		return nil
	}

	// The rotated surface already carries the scale; it is centered where
	// the unrotated sprite would have been.
	sheet := r.Surface.Bounds().Size()
	key := common.RotationKey(spr.Name, uint64(spr.Renderable), sheet, p.Angle, clip, p.ScaleX, p.ScaleY, p.Flipped)
	d := c.store.Derived()
	rotated, ok := d.Surface(key)
	if !ok {
		rotated = rotateSurface(r.Surface, clip, p.ScaleX, p.ScaleY, p.Angle)
		d.Put(key, sprite.Renderable{Surface: rotated})
	}
	c.blit(rotated, rotated.Bounds(), centeredOn(common.Place(p.X, p.Y, w, h, p.ScaleX, p.ScaleY, p.Centered), rotated.Bounds().Size()))
	return nil
}

func hasFlippedSuffix(name string) bool {
	n := len(sprite.FlippedSuffix)
	return len(name) > n && name[len(name)-n:] == sprite.FlippedSuffix
}

// centeredOn returns a rectangle of size sz sharing pl's center.
func centeredOn(pl common.Placement, sz image.Point) image.Rectangle {
	cx, cy := pl.Center()
	x := int(math.Floor(cx)) - sz.X/2
	y := int(math.Floor(cy)) - sz.Y/2
	return image.Rect(x, y, x+sz.X, y+sz.Y)
}

func (c *cpuBackend) drawTexture(*ebiten.Image, image.Rectangle, Params) error {
	return ErrModeMismatch
}

// drawSurface draws a raw surface. Surfaces have no pre-flipped variant or
// cache identity, so flip and rotation go through one affine transform.
func (c *cpuBackend) drawSurface(surf *image.RGBA, clip image.Rectangle, p Params) error {
	if clip.Empty() {
		clip = surf.Bounds()
	}
	w, h := clip.Dx(), clip.Dy()
	pl := common.Place(p.X, p.Y, w, h, p.ScaleX, p.ScaleY, p.Centered)
	angle := common.NormalizeAngle(p.Angle)
	if !p.Flipped && angle == 0 {
		c.blit(surf, clip, pl.Rect())
		return nil
	}
	s2d := placementTransform(clip, pl, angle, p.Flipped)
	draw.NearestNeighbor.Transform(c.screen, s2d, surf, clip, draw.Over, c.options())
	return nil
}

func (c *cpuBackend) drawText(_ string, r sprite.Renderable, p Params) error {
	if r.Surface == nil {
		return errorf("text has no pixels")
	}
	return c.drawSurface(r.Surface, r.Surface.Bounds(), p)
}

func (c *cpuBackend) fillRect(rect image.Rectangle, col color.Color) {
	draw.Draw(c.screen, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *cpuBackend) fillCircle(x, y, radius int, col color.Color, filled bool) {
	m := circleMask{cx: x, cy: y, r: radius, filled: filled}
	draw.DrawMask(c.screen, m.Bounds(), image.NewUniform(col), image.Point{}, m, m.Bounds().Min, draw.Over)
}

func (c *cpuBackend) clear(bg color.Color) {
	draw.Draw(c.screen, c.screen.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (c *cpuBackend) present(screen *ebiten.Image, rotation float64) {
	if c.shadow == nil {
		b := c.screen.Bounds()
		c.shadow = ebiten.NewImage(b.Dx(), b.Dy())
	}
	c.shadow.WritePixels(c.screen.Pix)
	presentTarget(screen, c.shadow, rotation)
}

func (c *cpuBackend) setAlpha(a uint8) {
	c.alpha = a
}

// placementTransform maps clip onto pl: mirrored when flipped, scaled to the
// placement size and rotated clockwise by angle degrees about its center.
func placementTransform(clip image.Rectangle, pl common.Placement, angle float64, flipped bool) f64.Aff3 {
	sx := float64(pl.W) / float64(clip.Dx())
	sy := float64(pl.H) / float64(clip.Dy())
	if flipped {
		sx = -sx
	}
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	scx := float64(clip.Min.X) + float64(clip.Dx())/2
	scy := float64(clip.Min.Y) + float64(clip.Dy())/2
	dcx, dcy := pl.Center()
	return f64.Aff3{
		cos * sx, -sin * sy, dcx - cos*sx*scx + sin*sy*scy,
		sin * sx, cos * sy, dcy - sin*sx*scx - cos*sy*scy,
	}
}

// circleMask is an alpha mask covering a disc, or a one pixel ring when not
// filled.
type circleMask struct {
	cx, cy, r int
	filled    bool
}

func (m circleMask) ColorModel() color.Model { return color.AlphaModel }

func (m circleMask) Bounds() image.Rectangle {
	return image.Rect(m.cx-m.r, m.cy-m.r, m.cx+m.r+1, m.cy+m.r+1)
}

func (m circleMask) At(x, y int) color.Color {
	dx, dy := x-m.cx, y-m.cy
	d2 := dx*dx + dy*dy
	if d2 > m.r*m.r {
		return color.Transparent
	}
	if !m.filled && d2 <= (m.r-1)*(m.r-1) {
		return color.Transparent
	}
	return color.Opaque
}
