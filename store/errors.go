package store

import "errors"

var (
	// ErrResourceNotFound is returned for any lookup of a name that was never
	// stored. It indicates a programming or content error and is never
	// defaulted away.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDuplicateResource is returned when an animation definition is stored
	// under a name that already exists. The original definition is kept.
	ErrDuplicateResource = errors.New("duplicate resource")

	// ErrStaleHandle is returned when resolving a handle whose slot was
	// released by an overwrite or by Clear.
	ErrStaleHandle = errors.New("stale renderable handle")

	// ErrUnsupportedAudio is returned when loading audio whose extension is
	// not wav, mp3 or ogg.
	ErrUnsupportedAudio = errors.New("unsupported audio format")
)
