package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/store"
)

// sheetPNG encodes a w*h picture whose pixel at x has red channel x, so
// flips are visible in the surface.
func sheetPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func wavBytes(sampleRate, n int) []byte {
	dataLen := n * 4
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataLen))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(&b, binary.LittleEndian, uint16(4))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(dataLen))
	b.Write(make([]byte, dataLen))
	return b.Bytes()
}

func newLoader() *Loader {
	return New(store.New(store.Options{FontSizes: []int{12}}), nil)
}

func TestLoadPicture(t *testing.T) {
	l := newLoader()
	fsys := fstest.MapFS{"img/hero.png": {Data: sheetPNG(t, 64, 16)}}

	if err := l.LoadPicture("hero", "img/hero.png", fsys); err != nil {
		t.Fatalf("load picture: %v", err)
	}
	st := l.Store()

	surf, err := st.Surface("hero")
	if err != nil {
		t.Fatalf("surface: %v", err)
	}
	flipped, err := st.Surface("hero_f")
	if err != nil {
		t.Fatalf("flipped surface: %v", err)
	}
	if got := flipped.RGBAAt(0, 3); got != surf.RGBAAt(63, 3) {
		t.Fatalf("flipped (0,3) = %v, want %v", got, surf.RGBAAt(63, 3))
	}

	spr, err := st.Sprite("hero")
	if err != nil {
		t.Fatalf("sprite: %v", err)
	}
	if spr.Flipped || spr.Clip != image.Rect(0, 0, 64, 16) || spr.SheetWidth != 64 {
		t.Fatalf("unexpected sprite %v", spr)
	}
	sprF, err := st.Sprite("hero_f")
	if err != nil {
		t.Fatalf("flipped sprite: %v", err)
	}
	if !sprF.Flipped {
		t.Fatalf("hero_f is not flipped")
	}
	r, err := st.Resolve(sprF.Renderable)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if r.Surface != flipped {
		t.Fatalf("flipped sprite does not use the flipped surface")
	}
	if r.Texture != nil {
		t.Fatalf("texture created without a creator")
	}
}

func TestLoadPictureErrors(t *testing.T) {
	l := newLoader()
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not a png")}}

	tests := []struct {
		name string
		path string
	}{
		{"missing", "nope.png"},
		{"undecodable", "bad.png"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := l.LoadPicture("x", tc.path, fsys); err == nil {
				t.Fatalf("expected error")
			}
			if _, err := l.Store().Sprite("x"); !errors.Is(err, store.ErrResourceNotFound) {
				t.Fatalf("failed picture was stored: %v", err)
			}
		})
	}
}

func TestLoadSpriteSheet(t *testing.T) {
	l := newLoader()
	fsys := fstest.MapFS{"sheet.png": {Data: sheetPNG(t, 64, 32)}}
	if err := l.LoadPicture("sheet", "sheet.png", fsys); err != nil {
		t.Fatalf("load: %v", err)
	}
	// 4 columns of 16x16, two rows. Start at cell 2 to wrap onto row two.
	if err := l.LoadSpriteSheet("sheet", "run", 2, 4, 16, 16); err != nil {
		t.Fatalf("sheet: %v", err)
	}

	tests := []struct {
		name string
		want image.Rectangle
	}{
		{"run_0", image.Rect(32, 0, 48, 16)},
		{"run_1", image.Rect(48, 0, 64, 16)},
		{"run_2", image.Rect(0, 16, 16, 32)},
		{"run_3", image.Rect(16, 16, 32, 32)},
		{"run_3_f", image.Rect(16, 16, 32, 32)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spr, err := l.Store().Sprite(tc.name)
			if err != nil {
				t.Fatalf("sprite: %v", err)
			}
			if spr.Clip != tc.want {
				t.Fatalf("clip = %v, want %v", spr.Clip, tc.want)
			}
			if spr.SheetWidth != 64 {
				t.Fatalf("sheet width = %d", spr.SheetWidth)
			}
		})
	}

	if err := l.LoadSpriteSheet("sheet", "far", 0, 9, 16, 16); err == nil {
		t.Fatalf("expected error for cells past the picture")
	}
	if err := l.LoadSpriteSheet("missing", "x", 0, 1, 16, 16); !errors.Is(err, store.ErrResourceNotFound) {
		t.Fatalf("missing picture err = %v", err)
	}
}

func TestDefineAnimation(t *testing.T) {
	l := newLoader()
	fsys := fstest.MapFS{"s.png": {Data: sheetPNG(t, 32, 16)}}
	if err := l.LoadPicture("s", "s.png", fsys); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := l.LoadSpriteSheet("s", "s", 0, 2, 16, 16); err != nil {
		t.Fatalf("sheet: %v", err)
	}
	frames := []anim.Frame{{Sprite: "s_0", Duration: 100}, {Sprite: "s_1", Duration: 50}}
	if err := l.DefineAnimation("blink", true, frames...); err != nil {
		t.Fatalf("define: %v", err)
	}
	if err := l.DefineAnimation("blink", false); !errors.Is(err, store.ErrDuplicateResource) {
		t.Fatalf("redefine err = %v", err)
	}

	a, err := l.Store().CreateAnimation("blink", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.TotalDuration() != 150 || !a.Loop() {
		t.Fatalf("unexpected animation %v", a)
	}
	if got := a.CurrentSprite().Name; got != "s_0_f" {
		t.Fatalf("first frame = %q, want s_0_f", got)
	}
}

func TestLoadAudio(t *testing.T) {
	l := newLoader()
	fsys := fstest.MapFS{
		"sfx/jump.wav":    {Data: wavBytes(store.DefaultSampleRate, 64)},
		"music/theme.wav": {Data: wavBytes(store.DefaultSampleRate, 64)},
	}
	if err := l.LoadSound("jump", "sfx/jump.wav", fsys); err != nil {
		t.Fatalf("sound: %v", err)
	}
	if err := l.LoadMusic("theme", "music/theme.wav", fsys); err != nil {
		t.Fatalf("music: %v", err)
	}
	if err := l.LoadSound("gone", "sfx/gone.wav", fsys); err == nil {
		t.Fatalf("expected missing file error")
	}
}
