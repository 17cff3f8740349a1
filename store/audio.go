package store

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Sound is a short effect decoded up front into PCM at the store's sample
// rate.
type Sound struct {
	Name       string
	Path       string
	SampleRate int
	PCM        []byte
}

// NewPlayer creates a player for one playback of the sound.
func (s *Sound) NewPlayer(ctx *audio.Context) *audio.Player {
	return ctx.NewPlayerFromBytes(s.PCM)
}

// Music keeps its encoded bytes and is decoded as a stream on playback.
type Music struct {
	Name       string
	Path       string
	SampleRate int

	data []byte
}

// NewPlayer creates a player that loops the track forever.
func (m *Music) NewPlayer(ctx *audio.Context) (*audio.Player, error) {
	st, err := decodeStream(m.Path, m.data, m.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("store: music %q: %w", m.Name, err)
	}
	return ctx.NewPlayer(audio.NewInfiniteLoop(st, st.Length()))
}

type stream interface {
	io.ReadSeeker
	Length() int64
}

// decodeStream picks a decoder from the file extension. Only wav, mp3 and
// ogg are supported.
func decodeStream(path string, data []byte, sampleRate int) (stream, error) {
	r := bytes.NewReader(data)
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		st, err := wav.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return st, nil
	case ".mp3":
		st, err := mp3.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode mp3 %q: %w", path, err)
		}
		return st, nil
	case ".ogg":
		st, err := vorbis.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", path, err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("%w %q for %q", ErrUnsupportedAudio, ext, path)
}

// LoadSound decodes data and stores it under name, overwriting with a
// warning. A decode failure is returned and nothing is stored.
func (s *Store) LoadSound(name, path string, data []byte) error {
	st, err := decodeStream(path, data, s.opts.SampleRate)
	if err != nil {
		return fmt.Errorf("store: sound %q: %w", name, err)
	}
	pcm, err := io.ReadAll(st)
	if err != nil {
		return fmt.Errorf("store: sound %q: read %q: %w", name, path, err)
	}
	s.StoreSound(name, &Sound{Name: name, Path: path, SampleRate: s.opts.SampleRate, PCM: pcm})
	return nil
}

// LoadMusic validates that data decodes and stores it under name.
func (s *Store) LoadMusic(name, path string, data []byte) error {
	if _, err := decodeStream(path, data, s.opts.SampleRate); err != nil {
		return fmt.Errorf("store: music %q: %w", name, err)
	}
	s.StoreMusic(name, &Music{Name: name, Path: path, SampleRate: s.opts.SampleRate, data: data})
	return nil
}

func (s *Store) StoreSound(name string, snd *Sound) {
	if _, ok := s.sounds[name]; ok {
		warnDuplicate(KindSound, name)
	}
	s.sounds[name] = snd
}

func (s *Store) StoreMusic(name string, m *Music) {
	if _, ok := s.musics[name]; ok {
		warnDuplicate(KindMusic, name)
	}
	s.musics[name] = m
}

func (s *Store) Sound(name string) (*Sound, error) {
	snd, ok := s.sounds[name]
	if !ok {
		return nil, notFound(KindSound, name)
	}
	return snd, nil
}

func (s *Store) Music(name string) (*Music, error) {
	m, ok := s.musics[name]
	if !ok {
		return nil, notFound(KindMusic, name)
	}
	return m, nil
}
