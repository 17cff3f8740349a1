package anim

import (
	"image"
	"testing"

	"github.com/milk9111/spritekit/sprite"
)

func newTestAnimation(loop bool, durations ...int) *Animation {
	a := NewAnimation("test", loop)
	for i, d := range durations {
		s := sprite.Sprite{
			Name:       "frame_" + string(rune('0'+i)),
			Renderable: sprite.MakeHandle(1, 0),
			Clip:       image.Rect(i*16, 0, i*16+16, 16),
			SheetWidth: 16 * len(durations),
		}
		a.AddSprite(Frame{Sprite: s.Name, Duration: d}, s)
	}
	return a
}

func TestAnimationWalkScenario(t *testing.T) {
	a := newTestAnimation(true, 100, 100)

	a.Update(150)
	if a.Index() != 1 {
		t.Fatalf("after 150ms expected index 1, got %d", a.Index())
	}

	a.Update(60)
	if a.Elapsed() != 10 {
		t.Fatalf("expected elapsed to wrap to 10, got %d", a.Elapsed())
	}
	if a.Index() != 0 {
		t.Fatalf("after 210ms expected index 0, got %d", a.Index())
	}
}

func TestAnimationLoopIndex(t *testing.T) {
	durations := []int{50, 120, 30, 200}
	total := 0
	for _, d := range durations {
		total += d
	}

	expected := func(T int) int {
		m := T % total
		sum := 0
		for i, d := range durations {
			sum += d
			if sum > m {
				return i
			}
		}
		return len(durations) - 1
	}

	for _, T := range []int{0, 1, 49, 50, 51, 169, 170, 199, 200, 399, 401, 950, 1234} {
		a := newTestAnimation(true, durations...)
		a.Update(T)
		if got, want := a.Index(), expected(T); got != want {
			t.Fatalf("T=%d: expected index %d, got %d", T, want, got)
		}
	}
}

func TestAnimationInitialFrame(t *testing.T) {
	a := newTestAnimation(true, 100, 100, 100)
	if got := a.CurrentSprite().Name; got != "frame_0" {
		t.Fatalf("expected frame_0 at t=0, got %s", got)
	}
}

func TestAnimationStartResets(t *testing.T) {
	cases := []struct {
		name    string
		loop    bool
		advance []int
	}{
		{"fresh", true, nil},
		{"mid_loop", true, []int{150}},
		{"past_end_non_loop", false, []int{1000, 1000}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newTestAnimation(c.loop, 100, 100)
			for _, dt := range c.advance {
				a.Update(dt)
			}
			a.Start()
			a.Update(0)
			if a.Index() != 0 {
				t.Fatalf("expected index 0 after restart, got %d", a.Index())
			}
			if a.Len() != 2 {
				t.Fatalf("restart should keep frames, got %d", a.Len())
			}
		})
	}
}

func TestAnimationNonLoopClampsToLast(t *testing.T) {
	a := newTestAnimation(false, 100, 100, 100)
	a.Update(250)
	if a.Index() != 2 {
		t.Fatalf("expected index 2, got %d", a.Index())
	}
	a.Update(500)
	if a.Index() != 2 {
		t.Fatalf("expected clamp to last frame, got %d", a.Index())
	}
	if !a.Done() {
		t.Fatalf("expected non-looping animation to be done")
	}
}

func TestAnimationZeroDuration(t *testing.T) {
	a := newTestAnimation(true, 0, 0)
	a.Update(16)
	if a.Elapsed() != 0 {
		t.Fatalf("expected elapsed reset to 0, got %d", a.Elapsed())
	}
	if a.Index() != 1 {
		t.Fatalf("expected last frame when no frame covers t, got %d", a.Index())
	}
}

func TestAnimationUninitialized(t *testing.T) {
	a := NewAnimation("empty", true)
	if a.IsInitialized() {
		t.Fatalf("empty animation should not be initialized")
	}
	a.Update(100)
	if a.Elapsed() != 0 {
		t.Fatalf("update on empty animation should be a no-op")
	}
}

func TestAnimationOutOfRangeFallsBack(t *testing.T) {
	a := newTestAnimation(true, 100, 100)
	a.index = 7
	if got := a.CurrentSprite().Name; got != "frame_0" {
		t.Fatalf("expected fallback to frame_0, got %s", got)
	}
}

func TestAnimationCloneIsIndependent(t *testing.T) {
	a := newTestAnimation(true, 100, 100)
	c := a.Clone()
	c.Update(150)
	if a.Index() != 0 || c.Index() != 1 {
		t.Fatalf("clone should advance independently: orig=%d clone=%d", a.Index(), c.Index())
	}
}

func TestDefinitionFrames(t *testing.T) {
	d := NewDefinition("walk", true)
	d.AddFrame("walk_0", 100)
	d.AddFrame("walk_1", 150)
	if d.Len() != 2 || d.TotalDuration() != 250 {
		t.Fatalf("unexpected definition: len=%d total=%d", d.Len(), d.TotalDuration())
	}
	frames := d.Frames()
	frames[0].Sprite = "mutated"
	if d.Frames()[0].Sprite != "walk_0" {
		t.Fatalf("Frames should return a copy")
	}
}
