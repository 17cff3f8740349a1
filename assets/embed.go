// Package assets bundles the demo sprite sheet, sound and manifest so the
// programs run without an asset directory.
package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed manifest.yaml *.png *.wav
var bundle embed.FS

// Manifest is the bundled manifest's path inside FS.
const Manifest = "manifest.yaml"

// FS returns the bundled assets.
func FS() fs.FS {
	return bundle
}

// Open returns dir on disk when it exists, so edited assets win over the
// bundled copies, and the bundle otherwise.
func Open(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir)
		}
	}
	return bundle
}

// CleanPath turns a path given on the command line into one that can be
// opened from Open's result.
func CleanPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(filepath.Clean(path))
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
