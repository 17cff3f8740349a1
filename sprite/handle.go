package sprite

import "strconv"

// Handle is a generational index into a store's renderable arena. The low 32
// bits hold the 1-based slot id and the high 32 bits the slot generation the
// handle was issued for. The zero Handle is invalid.
type Handle uint64

const idBits = 32

func MakeHandle(id, gen uint32) Handle {
	return Handle(uint64(gen)<<idBits | uint64(id))
}

func (h Handle) ID() uint32 {
	return uint32(h)
}

func (h Handle) Generation() uint32 {
	return uint32(uint64(h) >> idBits)
}

func (h Handle) Valid() bool {
	return h.ID() > 0
}

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h.ID()), 10) + "@" + strconv.FormatUint(uint64(h.Generation()), 10)
}
