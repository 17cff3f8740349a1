package anim

import (
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/sprite"
)

// Animation plays a sequence of sprites over time. It owns copies of its
// sprites, so it can be drawn without going back to the store that built it.
// The copies refer to pixels by handle: once that store is cleared they fail
// to resolve instead of pointing at freed memory.
type Animation struct {
	name    string
	loop    bool
	frames  []Frame
	sprites []sprite.Sprite

	t             int
	totalDuration int
	index         int
}

func NewAnimation(name string, loop bool) *Animation {
	return &Animation{name: name, loop: loop}
}

// AddSprite appends a frame together with the sprite it shows.
func (a *Animation) AddSprite(f Frame, s sprite.Sprite) {
	a.frames = append(a.frames, f)
	a.sprites = append(a.sprites, s)
	a.totalDuration += f.Duration
}

// IsInitialized reports whether the animation has any frames to show.
func (a *Animation) IsInitialized() bool {
	return a != nil && len(a.frames) > 0 && len(a.sprites) > 0
}

// Start rewinds playback without discarding frames.
func (a *Animation) Start() {
	a.t = 0
}

// Update advances playback by dt milliseconds. Looping animations wrap once
// they pass their total duration; others stop on the last frame.
func (a *Animation) Update(dt int) {
	if len(a.frames) == 0 {
		return
	}
	a.t += dt
	if a.loop && a.t > a.totalDuration {
		if a.totalDuration > 0 {
			a.t = a.t % a.totalDuration
		} else {
			// zero-length animation
			a.t = 0
		}
	}
	a.index = a.frameAt(a.t)
}

func (a *Animation) frameAt(t int) int {
	n := len(a.frames)
	if n == 0 {
		return 0
	}
	elapsed := 0
	for i, f := range a.frames {
		elapsed += f.Duration
		if t < elapsed {
			return i
		}
	}
	return n - 1
}

// CurrentSprite returns the sprite for the current frame. An out-of-range
// index is logged and frame 0 is returned so the render loop keeps going.
func (a *Animation) CurrentSprite() sprite.Sprite {
	if a.index >= 0 && a.index < len(a.sprites) {
		return a.sprites[a.index]
	}
	common.Logger().Error("animation sprite index out of bounds",
		"animation", a.name, "index", a.index, "frames", len(a.sprites))
	if len(a.sprites) == 0 {
		return sprite.Sprite{}
	}
	return a.sprites[0]
}

func (a *Animation) Name() string       { return a.name }
func (a *Animation) Loop() bool         { return a.loop }
func (a *Animation) Index() int         { return a.index }
func (a *Animation) Elapsed() int       { return a.t }
func (a *Animation) TotalDuration() int { return a.totalDuration }
func (a *Animation) Len() int           { return len(a.frames) }

// SetLoop changes whether playback wraps.
func (a *Animation) SetLoop(loop bool) {
	a.loop = loop
}

// Done reports whether a non-looping animation has reached its end.
func (a *Animation) Done() bool {
	return !a.loop && a.IsInitialized() && a.t >= a.totalDuration
}

// Clone returns an independent copy, including playback position.
func (a *Animation) Clone() *Animation {
	if a == nil {
		return nil
	}
	c := *a
	c.frames = append([]Frame(nil), a.frames...)
	c.sprites = append([]sprite.Sprite(nil), a.sprites...)
	return &c
}

func (a *Animation) String() string {
	if !a.IsInitialized() {
		return a.name + " <uninitialized>"
	}
	return a.name + " " + a.CurrentSprite().Name
}
