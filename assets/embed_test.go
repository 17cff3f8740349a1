package assets

import (
	"io/fs"
	"testing"
)

func TestBundle(t *testing.T) {
	for _, name := range []string{Manifest, "hero.png", "blip.wav"} {
		if _, err := fs.Stat(FS(), name); err != nil {
			t.Fatalf("bundled %s: %v", name, err)
		}
	}
	if Open("") != FS() {
		t.Fatalf("empty dir should open the bundle")
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"hero.png", "hero.png"},
		{"assets/hero.png", "hero.png"},
		{"./assets/sfx/../blip.wav", "blip.wav"},
		{"/home/me/game/assets/img/hero.png", "img/hero.png"},
		{"/tmp/hero.png", "hero.png"},
	}
	for _, tc := range tests {
		if got := CleanPath(tc.in); got != tc.want {
			t.Fatalf("CleanPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
