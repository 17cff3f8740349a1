package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/milk9111/spritekit/store"
)

var outlineOffsets = [...]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// rasterizeText draws text with f into a surface sized to the text's advance
// and the face's line height. Outline faces are dilated by one pixel in c.
func rasterizeText(f *store.Font, text string, c color.Color) *image.RGBA {
	metrics := f.Face.Metrics()
	pad := 0
	if f.Outline {
		pad = 1
	}
	w := font.MeasureString(f.Face, text).Ceil() + 2*pad
	h := (metrics.Ascent + metrics.Descent).Ceil() + 2*pad
	surf := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	dot := fixed.P(pad, pad+metrics.Ascent.Ceil())
	d := &font.Drawer{Dst: surf, Src: image.NewUniform(c), Face: f.Face}
	if f.Outline {
		for _, o := range outlineOffsets {
			d.Dot = dot.Add(fixed.P(o.X, o.Y))
			d.DrawString(text)
		}
	}
	d.Dot = dot
	d.DrawString(text)
	return surf
}
