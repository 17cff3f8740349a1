package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// wavBytes builds a 16-bit stereo PCM WAV file of n silent frames.
func wavBytes(sampleRate, n int) []byte {
	dataLen := n * 4
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataLen))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(2))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(&b, binary.LittleEndian, uint16(4))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(dataLen))
	b.Write(make([]byte, dataLen))
	return b.Bytes()
}

func TestLoadSound(t *testing.T) {
	s := New(DefaultOptions())
	if err := s.LoadSound("jump", "sfx/jump.wav", wavBytes(DefaultSampleRate, 100)); err != nil {
		t.Fatalf("load sound: %v", err)
	}
	snd, err := s.Sound("jump")
	if err != nil {
		t.Fatalf("sound: %v", err)
	}
	if len(snd.PCM) == 0 || len(snd.PCM)%4 != 0 {
		t.Fatalf("unexpected pcm length %d", len(snd.PCM))
	}
}

func TestLoadSoundDecodeFailure(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		data        []byte
		unsupported bool
	}{
		{"garbage_wav", "bad.wav", []byte("garbage"), false},
		{"garbage_mp3", "bad.mp3", []byte("garbage"), false},
		{"flac", "bad.flac", []byte("garbage"), true},
		{"valid_wav_misnamed", "jump.raw", wavBytes(DefaultSampleRate, 10), true},
		{"no_extension", "jump", wavBytes(DefaultSampleRate, 10), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(DefaultOptions())
			err := s.LoadSound("bad", tc.path, tc.data)
			if err == nil {
				t.Fatalf("expected decode error")
			}
			if tc.unsupported && !errors.Is(err, ErrUnsupportedAudio) {
				t.Fatalf("err = %v, want ErrUnsupportedAudio", err)
			}
			if _, err := s.Sound("bad"); !errors.Is(err, ErrResourceNotFound) {
				t.Fatalf("failed sound must not be stored, got %v", err)
			}

			if err := s.LoadMusic("bad", tc.path, tc.data); err == nil {
				t.Fatalf("expected music decode error")
			}
			if _, err := s.Music("bad"); !errors.Is(err, ErrResourceNotFound) {
				t.Fatalf("failed music must not be stored, got %v", err)
			}
		})
	}
}

func TestLoadMusic(t *testing.T) {
	s := New(DefaultOptions())
	if err := s.LoadMusic("theme", "music/theme.wav", wavBytes(DefaultSampleRate, 10)); err != nil {
		t.Fatalf("load music: %v", err)
	}
	m, err := s.Music("theme")
	if err != nil {
		t.Fatalf("music: %v", err)
	}
	if m.Path != "music/theme.wav" || m.SampleRate != DefaultSampleRate {
		t.Fatalf("unexpected music %+v", m)
	}
}
