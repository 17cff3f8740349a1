package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/assets"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/config"
	"github.com/milk9111/spritekit/loader"
	"github.com/milk9111/spritekit/render"
	"github.com/milk9111/spritekit/store"
)

// Viewer plays every animation of a manifest. Left and right pick the
// animation, F flips, R rotates, A cycles the global alpha, Space plays the
// first sound and Escape quits.
type Viewer struct {
	cfg    config.Config
	store  *store.Store
	engine *render.Engine
	loader *loader.Loader
	fsys   fs.FS

	watcher *loader.Watcher
	audio   *audio.Context

	names   []string
	current int
	anim    *anim.Animation
	flipped bool
	angle   float64
	status  string
}

func NewViewer(cfg config.Config) (*Viewer, error) {
	st := store.New(cfg.StoreOptions())
	e := render.NewEngine(cfg.RenderMode(), st, cfg.RenderOptions())
	e.SetGlobalAlpha(uint8(cfg.Alpha))
	e.SetRenderRotation(cfg.Rotation)

	v := &Viewer{
		cfg:    cfg,
		store:  st,
		engine: e,
		loader: loader.New(st, e),
		fsys:   assets.Open(cfg.AssetDir),
		audio:  audio.NewContext(st.Options().SampleRate),
	}
	if err := v.reload(); err != nil {
		return nil, err
	}

	if cfg.Watch && cfg.AssetDir != "" {
		w, err := loader.NewWatcher(cfg.AssetDir)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", cfg.AssetDir, err)
		}
		v.watcher = w
	}
	return v, nil
}

func (v *Viewer) Close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}

// reload drops every resource and loads the manifest again. Animations
// from before the reload hold stale handles, so the current one is rebuilt.
func (v *Viewer) reload() error {
	v.store.Clear()
	err := v.loader.LoadManifest(v.fsys, assets.CleanPath(v.cfg.Manifest))
	v.names = v.store.Names(store.KindAnimation)
	if len(v.names) == 0 {
		return errors.Join(err, errors.New("manifest defines no animations"))
	}
	if err != nil {
		common.Logger().Warn("some assets failed to load", "err", err)
	}
	v.current = common.ClampInt(v.current, 0, len(v.names)-1)
	return v.selectAnimation()
}

func (v *Viewer) selectAnimation() error {
	a, err := v.store.CreateAnimation(v.names[v.current], v.flipped)
	if err != nil {
		return err
	}
	v.anim = a
	v.status = ""
	return nil
}

// Frame advances the viewer by dt milliseconds and draws it.
func (v *Viewer) Frame(dt int) bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return false
	}
	v.pollWatcher()
	v.handleInput()

	v.anim.Update(dt)
	if v.anim.Done() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		v.anim.Start()
	}

	w, h := v.engine.RenderSize()
	v.engine.DrawRect(image.Rect(0, h-40, w, h), color.NRGBA{R: 30, G: 30, B: 40, A: 255})
	v.engine.DrawCircle(w/2, h/2, 64, color.NRGBA{R: 80, G: 80, B: 90, A: 255}, false)

	err := v.engine.DrawAnimation(v.anim, render.Params{
		X: w / 2, Y: h / 2,
		ScaleX: 4, ScaleY: 4,
		Angle:    v.angle,
		Centered: true,
		Flipped:  v.flipped,
	})
	if err != nil {
		v.status = err.Error()
	}

	v.drawText(fmt.Sprintf("%s  frame %d/%d  %s", v.anim.Name(), v.anim.Index()+1, v.anim.Len(), v.engine.Mode()), 8, 8)
	if v.status != "" {
		v.drawText(v.status, 8, h-32)
	} else {
		v.drawText(fmt.Sprintf("flip=%t angle=%.0f alpha=%d", v.flipped, v.angle, v.engine.GlobalAlpha()), 8, h-32)
	}
	return true
}

func (v *Viewer) drawText(s string, x, y int) {
	err := v.engine.DrawText(s, render.TextParams{Size: 16, X: x, Y: y, Color: color.White})
	if err != nil {
		common.Logger().Debug("text skipped", "err", err)
	}
}

func (v *Viewer) handleInput() {
	if len(v.names) == 0 {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.current = (v.current + 1) % len(v.names)
		v.setStatus(v.selectAnimation())
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.current = (v.current + len(v.names) - 1) % len(v.names)
		v.setStatus(v.selectAnimation())
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.flipped = !v.flipped
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.angle = common.NormalizeAngle(v.angle + 15)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		v.engine.SetGlobalAlpha(v.engine.GlobalAlpha() - 64)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.playFirstSound()
	}
}

func (v *Viewer) setStatus(err error) {
	if err != nil {
		v.status = err.Error()
	}
}

func (v *Viewer) playFirstSound() {
	names := v.store.Names(store.KindSound)
	if len(names) == 0 {
		return
	}
	snd, err := v.store.Sound(names[0])
	if err != nil {
		v.setStatus(err)
		return
	}
	snd.NewPlayer(v.audio).Play()
}

// pollWatcher reloads between frames when asset files changed.
func (v *Viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	changed := v.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	common.Logger().Info("assets changed, reloading", "files", changed)
	v.setStatus(v.reload())
}
