package tca8418

// Event is one decoded FIFO entry in the controller's native row/column space.
type Event struct {
	Pressed bool
	Row     uint8
	Col     uint8
}

// DecodeEvent splits a raw FIFO byte. ok is false for an empty entry (0x00)
// and for a press/release flag without a key code (0x80), which the chip
// never produces for a real key.
func DecodeEvent(b uint8) (ev Event, ok bool) {
	code := b & eventCodeMask
	if code == 0 {
		return Event{}, false
	}
	code-- // FIFO key codes are 1-based
	return Event{
		Pressed: b&eventPressBit != 0,
		Row:     code / 10,
		Col:     code % 10,
	}, true
}

// Code returns the raw FIFO byte for this event (inverse of DecodeEvent).
func (e Event) Code() uint8 {
	b := e.Row*10 + e.Col + 1
	if e.Pressed {
		b |= eventPressBit
	}
	return b
}
