// services/hal/internal/platform/tca8418_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"kbdcore-go/drivers/tca8418"
)

// FakeTCA8418 is a register-level stand-in for a TCA8418 keypad controller.
// Attach it to a HostI2C at tca8418.AddressDefault. Key activity queues FIFO
// events, latches K_INT and pulls the INT line (if wired) low. INT is released
// once K_INT is cleared with an empty FIFO.
type FakeTCA8418 struct {
	mu   sync.Mutex
	regs [0x30]uint8
	fifo []uint8
	int_ *FakePin

	// Fail makes every transaction NACK.
	Fail bool
}

func NewFakeTCA8418() *FakeTCA8418 { return &FakeTCA8418{} }

// WireINT connects the open-drain interrupt output to pin.
func (f *FakeTCA8418) WireINT(pin *FakePin) {
	f.mu.Lock()
	f.int_ = pin
	f.mu.Unlock()
}

// Press queues a press event for the native row/col.
func (f *FakeTCA8418) Press(row, col uint8) { f.push(0x80 | (row*10 + col + 1)) }

// Release queues a release event for the native row/col.
func (f *FakeTCA8418) Release(row, col uint8) { f.push(row*10 + col + 1) }

// PushRaw queues an arbitrary FIFO byte.
func (f *FakeTCA8418) PushRaw(b uint8) { f.push(b) }

func (f *FakeTCA8418) push(b uint8) {
	f.mu.Lock()
	if len(f.fifo) < tca8418.MaxCols {
		f.fifo = append(f.fifo, b)
	} else {
		f.regs[tca8418.RegIntStat] |= tca8418.IntStatOvrFlow
	}
	f.regs[tca8418.RegIntStat] |= tca8418.IntStatK
	pin := f.int_
	f.mu.Unlock()
	if pin != nil {
		pin.Set(false)
	}
}

// Queued returns the number of FIFO events not yet read.
func (f *FakeTCA8418) Queued() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fifo)
}

// Reg returns the current value of a register.
func (f *FakeTCA8418) Reg(reg uint8) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[reg]
}

func (f *FakeTCA8418) Tx(w, r []byte) error {
	f.mu.Lock()
	if f.Fail || len(w) == 0 || int(w[0]) >= len(f.regs) {
		f.mu.Unlock()
		return ErrNoDevice
	}
	reg := w[0]
	var release *FakePin

	switch {
	case len(w) >= 2:
		v := w[1]
		if reg == tca8418.RegIntStat {
			f.regs[reg] &^= v
			if len(f.fifo) > 0 {
				f.regs[reg] |= tca8418.IntStatK
			} else if f.regs[reg]&tca8418.IntStatK == 0 {
				release = f.int_
			}
		} else {
			f.regs[reg] = v
		}
	case len(r) > 0:
		switch reg {
		case tca8418.RegKeyEventA:
			if len(f.fifo) == 0 {
				r[0] = 0
			} else {
				r[0] = f.fifo[0]
				f.fifo = f.fifo[1:]
			}
		case tca8418.RegKeyLckEC:
			r[0] = f.regs[reg]&0xF0 | uint8(len(f.fifo))
		default:
			r[0] = f.regs[reg]
		}
	}
	f.mu.Unlock()

	if release != nil && !release.Get() {
		release.Set(true)
	}
	return nil
}
