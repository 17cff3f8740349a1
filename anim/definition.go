package anim

// DefaultFrameDuration is used when a frame is defined without a duration.
const DefaultFrameDuration = 100

// Frame names one sprite of an animation and how long it is shown, in ms.
type Frame struct {
	Sprite   string
	Duration int
}

// Definition is the shareable description of an animation. Playback state
// lives in Animation, which is built from a Definition by a store.
type Definition struct {
	Name string
	Loop bool

	frames []Frame
}

func NewDefinition(name string, loop bool) *Definition {
	return &Definition{Name: name, Loop: loop}
}

// AddFrame appends a frame. Definitions only grow.
func (d *Definition) AddFrame(spriteName string, ms int) {
	if d == nil {
		return
	}
	d.frames = append(d.frames, Frame{Sprite: spriteName, Duration: ms})
}

// Frames returns a copy of the frame list.
func (d *Definition) Frames() []Frame {
	if d == nil {
		return nil
	}
	out := make([]Frame, len(d.frames))
	copy(out, d.frames)
	return out
}

func (d *Definition) Len() int {
	if d == nil {
		return 0
	}
	return len(d.frames)
}

func (d *Definition) TotalDuration() int {
	total := 0
	if d == nil {
		return total
	}
	for _, f := range d.frames {
		total += f.Duration
	}
	return total
}
