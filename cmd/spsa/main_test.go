package main

import (
	"testing"

	"github.com/milk9111/spritekit/loader"
	"github.com/milk9111/spritekit/store"
)

func TestLoadPreviewBundledSheet(t *testing.T) {
	st := store.New(store.Options{FontSizes: []int{12}})
	a, err := loadPreview(loader.New(st, nil), options{frameW: 32, frameH: 32, count: 4, fps: 10})
	if err != nil {
		t.Fatalf("load preview: %v", err)
	}
	if a.Len() != 4 || a.TotalDuration() != 400 || !a.Loop() {
		t.Fatalf("unexpected preview %v", a)
	}
	a.Update(250)
	if got := a.CurrentSprite().Name; got != "frame_2" {
		t.Fatalf("frame at 250ms = %q, want frame_2", got)
	}
}

func TestLoadPreviewErrors(t *testing.T) {
	tests := []struct {
		name string
		o    options
	}{
		{"missing_file", options{sheet: "does/not/exist.png", frameW: 32, frameH: 32, count: 1}},
		{"too_many_frames", options{frameW: 32, frameH: 32, count: 5}},
		{"bad_cell", options{frameW: 0, frameH: 32, count: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := store.New(store.Options{FontSizes: []int{12}})
			if _, err := loadPreview(loader.New(st, nil), tc.o); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
