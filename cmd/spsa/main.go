// Command spsa previews one row of cells of a sprite sheet as a looping
// animation.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/assets"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/loader"
	"github.com/milk9111/spritekit/render"
	"github.com/milk9111/spritekit/store"
)

const size = 512

type options struct {
	sheet   string
	frameW  int
	frameH  int
	start   int
	count   int
	fps     int
	scale   float64
	mode    string
	flipped bool
}

func main() {
	var o options
	flag.StringVar(&o.sheet, "sheet", "", "sprite sheet image; the bundled hero sheet when empty")
	flag.IntVar(&o.frameW, "w", 32, "frame width")
	flag.IntVar(&o.frameH, "h", 32, "frame height")
	flag.IntVar(&o.start, "start", 0, "first cell")
	flag.IntVar(&o.count, "n", 4, "number of frames")
	flag.IntVar(&o.fps, "fps", 8, "frames per second")
	flag.Float64Var(&o.scale, "scale", 4, "draw scale")
	flag.StringVar(&o.mode, "mode", "gpu", "render mode, cpu or gpu")
	flag.BoolVar(&o.flipped, "flip", false, "draw mirrored")
	flag.Parse()

	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	mode, err := render.ParseMode(o.mode)
	if err != nil {
		log.Fatal(err)
	}
	st := store.New(store.DefaultOptions())
	e := render.NewEngine(mode, st, render.Options{Width: size, Height: size, Background: color.Black})

	a, err := loadPreview(loader.New(st, e), o)
	if err != nil {
		log.Fatal(err)
	}

	err = render.Run(e, fmt.Sprintf("spsa %s", a.Name()), func(dt int) bool {
		a.Update(dt)
		if err := e.DrawAnimation(a, render.Params{
			X: size / 2, Y: size / 2,
			ScaleX: o.scale, ScaleY: o.scale,
			Centered: true,
			Flipped:  o.flipped,
		}); err != nil {
			log.Print(err)
			return false
		}
		return true
	})
	if err != nil {
		log.Fatal(err)
	}
}

// loadPreview loads the sheet, cuts its frames and returns a looping
// animation over them.
func loadPreview(l *loader.Loader, o options) (*anim.Animation, error) {
	if o.sheet == "" {
		if err := l.LoadPicture("sheet", "hero.png", assets.FS()); err != nil {
			return nil, err
		}
	} else {
		dir, file := filepath.Split(o.sheet)
		if dir == "" {
			dir = "."
		}
		if err := l.LoadPicture("sheet", file, os.DirFS(dir)); err != nil {
			return nil, err
		}
	}
	if err := l.LoadSpriteSheet("sheet", "frame", o.start, o.count, o.frameW, o.frameH); err != nil {
		return nil, err
	}

	ms := anim.DefaultFrameDuration
	if o.fps > 0 {
		ms = max(1000/o.fps, 1)
	}
	frames := make([]anim.Frame, o.count)
	for i := range frames {
		frames[i] = anim.Frame{Sprite: fmt.Sprintf("frame_%d", i), Duration: ms}
	}
	if err := l.DefineAnimation("preview", true, frames...); err != nil {
		return nil, err
	}
	return l.Store().CreateAnimation("preview", false)
}
