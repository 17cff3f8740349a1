package render

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoopUpdate(t *testing.T) {
	e, _ := newCPUEngine(t, 8, 8)
	clock := time.Unix(0, 0)

	var deltas []int
	l := NewLoop(e, func(dt int) bool {
		deltas = append(deltas, dt)
		return len(deltas) < 3
	})
	l.now = func() time.Time { return clock }

	for i := 0; i < 2; i++ {
		if err := l.Update(); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		clock = clock.Add(16 * time.Millisecond)
	}
	if l.DeltaTime() != 16 {
		t.Fatalf("delta = %d, want 16", l.DeltaTime())
	}
	if err := l.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("final update = %v, want Termination", err)
	}
	if deltas[0] != 0 || deltas[1] != 16 || deltas[2] != 16 {
		t.Fatalf("deltas = %v", deltas)
	}

	if w, h := l.Layout(100, 100); w != 8 || h != 8 {
		t.Fatalf("layout = %dx%d", w, h)
	}
}
