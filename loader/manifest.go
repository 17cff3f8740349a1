package loader

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/spritekit/anim"
	"github.com/milk9111/spritekit/common"
	"github.com/milk9111/spritekit/store"
)

// Manifest lists every asset of a game. Paths are relative to the manifest.
type Manifest struct {
	Pictures    []PictureSpec     `yaml:"pictures"`
	Animations  []AnimationSpec   `yaml:"animations"`
	Sounds      []AudioSpec       `yaml:"sounds"`
	Music       []AudioSpec       `yaml:"music"`
	Fonts       []FontSpec        `yaml:"fonts"`
	FontAliases map[string]string `yaml:"font_aliases"`
}

type PictureSpec struct {
	Name    string       `yaml:"name"`
	Path    string       `yaml:"path"`
	Sheets  []SheetSpec  `yaml:"sheets"`
	Sprites []SpriteSpec `yaml:"sprites"`
}

// SheetSpec cuts Count cells of Width*Height. Consecutive sheets of one
// picture continue from the cell where the previous one stopped.
type SheetSpec struct {
	Name   string `yaml:"name"`
	Count  int    `yaml:"count"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type SpriteSpec struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type AnimationSpec struct {
	Name   string      `yaml:"name"`
	Loop   bool        `yaml:"loop"`
	Frames []FrameSpec `yaml:"frames"`
}

// FrameSpec is one animation frame. Duration defaults to 100ms.
type FrameSpec struct {
	Sprite   string `yaml:"sprite"`
	Duration int    `yaml:"duration"`
}

type AudioSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// FontSpec loads a font file, or one of the bundled Go fonts when Builtin
// is "goregular", "gobold" or "gomono".
type FontSpec struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Builtin string `yaml:"builtin"`
}

var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// ParseManifest decodes manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("loader: unmarshal manifest: %w", err)
	}
	return &m, nil
}

// LoadManifest reads the manifest at file in fsys and loads everything it
// lists. Pictures come first so sheets and animations can refer to them.
// Every failing entry is reported; the rest still load.
func (l *Loader) LoadManifest(fsys fs.FS, file string) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("loader: load %s: %w", file, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return fmt.Errorf("loader: %s: %w", file, err)
	}
	return l.Apply(fsys, path.Dir(file), m)
}

// Apply loads m, resolving its paths against dir in fsys.
func (l *Loader) Apply(fsys fs.FS, dir string, m *Manifest) error {
	var errs []error
	rel := func(p string) string { return path.Join(dir, p) }

	for _, pic := range m.Pictures {
		if err := l.LoadPicture(pic.Name, rel(pic.Path), fsys); err != nil {
			errs = append(errs, err)
			continue
		}
		next := 0
		for _, sh := range pic.Sheets {
			if err := l.LoadSpriteSheet(pic.Name, sh.Name, next, sh.Count, sh.Width, sh.Height); err != nil {
				errs = append(errs, err)
			}
			next += sh.Count
		}
		for _, sp := range pic.Sprites {
			clip := image.Rect(sp.X, sp.Y, sp.X+sp.Width, sp.Y+sp.Height)
			if err := l.LoadSprite(pic.Name, sp.Name, clip); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, a := range m.Animations {
		frames := make([]anim.Frame, 0, len(a.Frames))
		for _, f := range a.Frames {
			d := f.Duration
			if d <= 0 {
				d = anim.DefaultFrameDuration
			}
			frames = append(frames, anim.Frame{Sprite: f.Sprite, Duration: d})
		}
		if err := l.DefineAnimation(a.Name, a.Loop, frames...); err != nil {
			errs = append(errs, err)
		}
	}

	for _, f := range m.Fonts {
		var err error
		if f.Builtin != "" {
			ttf, ok := builtinFonts[f.Builtin]
			if !ok {
				err = fmt.Errorf("loader: font %q: unknown builtin %q", f.Name, f.Builtin)
			} else {
				err = l.store.LoadFont(f.Name, ttf)
			}
		} else {
			err = l.LoadFont(f.Name, rel(f.Path), fsys)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	for alias, name := range m.FontAliases {
		l.store.CreateFontAlias(alias, name)
	}

	for _, s := range m.Sounds {
		if err := l.LoadSound(s.Name, rel(s.Path), fsys); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range m.Music {
		if err := l.LoadMusic(s.Name, rel(s.Path), fsys); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		common.Logger().Error("manifest loaded with errors", "failures", len(errs))
	} else {
		common.Logger().Info("manifest loaded",
			"sprites", len(l.store.Names(store.KindSprite)),
			"animations", len(m.Animations))
	}
	return err
}
