package keyboard

import "kbdcore-go/types"

// Reader is one keyboard backend.
//
// Update performs one bounded scan and never blocks. Keys returns the
// backend's current list; it is owned by the reader and only valid until the
// next Update. Close releases pins and interrupt handlers.
type Reader interface {
	Begin() bool
	Update()
	Keys() []types.Point
	Close() error
}

// KeyNum packs a coordinate into a 1-based key number. A coordinate with a
// negative axis is "no key" and maps to 0.
func KeyNum(p types.Point) int {
	if p.X < 0 || p.Y < 0 {
		return 0
	}
	return p.Y*Cols + (p.X + 1)
}

func indexOf(keys []types.Point, p types.Point) int {
	for i, k := range keys {
		if k == p {
			return i
		}
	}
	return -1
}
