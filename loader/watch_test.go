package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsAssetFile(t *testing.T) {
	tests := map[string]bool{
		"a/manifest.yaml": true,
		"hero.PNG":        true,
		"jump.wav":        true,
		"font.ttf":        true,
		"notes.txt":       false,
		"main.go":         false,
	}
	for path, want := range tests {
		if got := isAssetFile(path); got != want {
			t.Fatalf("isAssetFile(%q) = %t, want %t", path, got, want)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "assets.yaml")
	if err := os.WriteFile(path, []byte("pictures: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event for %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", path)
	}

	w.Drain()
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
