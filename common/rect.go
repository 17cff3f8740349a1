package common

import "image"

// Placement is where a w*h image lands on the target after scaling.
type Placement struct {
	X, Y int
	W, H int
}

// Rect returns the destination rectangle.
func (p Placement) Rect() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
}

// Center returns the midpoint of the placement.
func (p Placement) Center() (float64, float64) {
	return float64(p.X) + float64(p.W)/2, float64(p.Y) + float64(p.H)/2
}

// Place scales a w*h image and positions it at (x, y). When centered, half of
// the scaled width and height is subtracted from the position.
func Place(x, y, w, h int, scaleX, scaleY float64, centered bool) Placement {
	sw := int(float64(w) * Scale(scaleX))
	sh := int(float64(h) * Scale(scaleY))
	if sw < 0 {
		sw = -sw
	}
	if sh < 0 {
		sh = -sh
	}
	p := Placement{X: x, Y: y, W: sw, H: sh}
	if centered {
		p.X -= sw / 2
		p.Y -= sh / 2
	}
	return p
}

// FlippedClipX mirrors a clip's X offset inside a spritesheet of width
// sheetW, for use against a horizontally flipped copy of the sheet.
func FlippedClipX(sheetW, clipX, clipW int) int {
	return sheetW - clipX - clipW
}

// FlipClip mirrors the clip horizontally within a sheet of width sheetW.
func FlipClip(clip image.Rectangle, sheetW int) image.Rectangle {
	x := FlippedClipX(sheetW, clip.Min.X, clip.Dx())
	return image.Rect(x, clip.Min.Y, x+clip.Dx(), clip.Max.Y)
}
