package render

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// FrameFunc is called once per update with the milliseconds since the
// previous update. Returning false ends the loop.
type FrameFunc func(dt int) bool

// Loop drives an Engine from ebiten's game loop. Each update clears the
// intermediate target before calling the frame function, and each draw
// presents it.
type Loop struct {
	engine *Engine
	frame  FrameFunc

	last time.Time
	dt   int
	now  func() time.Time
}

func NewLoop(e *Engine, frame FrameFunc) *Loop {
	return &Loop{engine: e, frame: frame, now: time.Now}
}

// DeltaTime returns the milliseconds between the two most recent updates.
func (l *Loop) DeltaTime() int {
	return l.dt
}

func (l *Loop) Update() error {
	now := l.now()
	if l.last.IsZero() {
		l.dt = 0
	} else {
		l.dt = int(now.Sub(l.last).Milliseconds())
	}
	l.last = now

	l.engine.ClearScreen()
	if l.frame != nil && !l.frame(l.dt) {
		return ebiten.Termination
	}
	return nil
}

func (l *Loop) Draw(screen *ebiten.Image) {
	l.engine.RenderIntermediate(screen)
}

func (l *Loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	return l.engine.RenderSize()
}

// Run opens a window sized to the engine and runs frame until it returns
// false or the window is closed.
func Run(e *Engine, title string, frame FrameFunc) error {
	w, h := e.RenderSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(NewLoop(e, frame)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
