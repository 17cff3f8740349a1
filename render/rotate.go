package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/milk9111/spritekit/common"
)

// rotatedSize is the bounding box of a w*h rectangle rotated by rad.
func rotatedSize(w, h, rad float64) image.Point {
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	// Trim float noise so 90 degree turns don't grow by a pixel.
	bw := int(math.Ceil(w*cos + h*sin - 1e-9))
	bh := int(math.Ceil(w*sin + h*cos - 1e-9))
	return image.Pt(max(bw, 1), max(bh, 1))
}

// rotateSurface returns clip of src scaled by (sx, sy) and rotated clockwise
// by angle degrees, in a new surface just large enough to hold it. The
// rotation is about the clip's center, which lands on the center of the
// result.
func rotateSurface(src *image.RGBA, clip image.Rectangle, sx, sy, angle float64) *image.RGBA {
	sx, sy = math.Abs(common.Scale(sx)), math.Abs(common.Scale(sy))
	rad := common.NormalizeAngle(angle) * math.Pi / 180
	w, h := float64(clip.Dx())*sx, float64(clip.Dy())*sy
	size := rotatedSize(w, h, rad)
	dst := image.NewRGBA(image.Rectangle{Max: size})

	cos, sin := math.Cos(rad), math.Sin(rad)
	cxs := float64(clip.Min.X) + float64(clip.Dx())/2
	cys := float64(clip.Min.Y) + float64(clip.Dy())/2
	cxd, cyd := float64(size.X)/2, float64(size.Y)/2
	m := f64.Aff3{
		cos * sx, -sin * sy, cxd - cos*sx*cxs + sin*sy*cys,
		sin * sx, cos * sy, cyd - sin*sx*cxs - cos*sy*cys,
	}
	draw.NearestNeighbor.Transform(dst, m, src, clip, draw.Src, nil)
	return dst
}
