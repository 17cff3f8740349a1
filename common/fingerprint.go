package common

import (
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Prefixes shared by every key of one kind, so a kind can be dropped from a
// cache at once.
const (
	TextKeyPrefix     = "text|"
	RotationKeyPrefix = "rot|"
)

// TextKey fingerprints every input that affects rasterized text pixels.
// Strings are length-prefixed so that no two distinct inputs collide.
// fontName must already be alias-resolved.
func TextKey(text, fontName string, size int, outline bool, c color.Color) string {
	var b strings.Builder
	b.WriteString(TextKeyPrefix)
	writeField(&b, text)
	writeField(&b, fontName)
	b.WriteString(strconv.Itoa(size))
	if outline {
		b.WriteString("o")
	}
	b.WriteByte('|')
	writeColor(&b, c)
	return b.String()
}

// RotationKey fingerprints a rotated, scaled sprite clip. The angle is
// normalized first, so -90 and 270 share an entry. handle identifies the
// pixels the sprite was cut from; it changes whenever they are replaced.
func RotationKey(name string, handle uint64, sheet image.Point, angle float64, clip image.Rectangle, scaleX, scaleY float64, flipped bool) string {
	var b strings.Builder
	b.WriteString(RotationKeyPrefix)
	writeField(&b, name)
	b.WriteString(strconv.FormatUint(handle, 16))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(sheet.X))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(sheet.Y))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(NormalizeAngle(angle), 'g', -1, 64))
	b.WriteByte('|')
	for _, v := range []int{clip.Min.X, clip.Min.Y, clip.Dx(), clip.Dy()} {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	b.WriteString(strconv.FormatFloat(Scale(scaleX), 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(Scale(scaleY), 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(flipped))
	return b.String()
}

func writeField(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
	b.WriteByte('|')
}

func writeColor(b *strings.Builder, c color.Color) {
	if c == nil {
		c = color.Black
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	b.WriteString(strconv.Itoa(int(n.R)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(n.G)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(n.B)))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(int(n.A)))
}
