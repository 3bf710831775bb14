package keyboard

import (
	"sync"
	"testing"

	"kbdcore-go/drivers/tca8418"
	"kbdcore-go/services/hal/internal/halcore"
	"kbdcore-go/services/hal/internal/platform"
	"kbdcore-go/types"
	"kbdcore-go/x/timex"
)

// rig is a host stand-in for the handheld: fake pins, an I2C bus and, when
// fitted, an emulated keypad controller with its INT line on the IRQ pin.
type rig struct {
	cfg   types.KeyboardConfig
	pins  *platform.HostPinFactory
	bus   *platform.HostI2C
	chip  *platform.FakeTCA8418
	clock *timex.Fake

	mu   sync.Mutex
	held map[[2]int]bool // matrix (phase, sense line)
}

func newRig(t *testing.T, withChip bool) *rig {
	t.Helper()
	r := &rig{
		cfg:   types.DefaultKeyboardConfig(),
		pins:  platform.NewPinFactory(),
		bus:   &platform.HostI2C{},
		clock: &timex.Fake{Ms: 1000},
		held:  make(map[[2]int]bool),
	}
	if withChip {
		r.chip = platform.NewFakeTCA8418()
		r.chip.WireINT(r.pins.Get(r.cfg.IRQPin))
		r.bus.Attach(tca8418.AddressDefault, r.chip)
	}
	for j, n := range r.cfg.InPins {
		line := j
		r.pins.Get(n).Sense(func() bool { return !r.closed(line) })
	}
	return r
}

func (r *rig) options() Options {
	return Options{
		Config: r.cfg,
		I2C:    platform.NewI2CFactory(map[string]*platform.HostI2C{"i2c0": r.bus}),
		Pins:   r.pins,
		Clock:  r.clock,
	}
}

func (r *rig) keyboard(t *testing.T, board types.BoardType) (*Keyboard, error) {
	t.Helper()
	k := New(r.options())
	err := k.Init(board)
	t.Cleanup(func() { _ = k.Close() })
	return k, err
}

// phase reads the decoder select lines.
func (r *rig) phase() int {
	ph := 0
	for i, n := range r.cfg.OutPins {
		if r.pins.Get(n).Get() {
			ph |= 1 << i
		}
	}
	return ph
}

func (r *rig) closed(line int) bool {
	ph := r.phase()
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[[2]int{ph, line}]
}

// matrixSwitch inverts DecodeMatrix for a logical coordinate.
func matrixSwitch(p types.Point) (phase, line int) {
	line = p.X / 2
	if p.X%2 == 0 {
		return (3 - p.Y) + 4, line
	}
	return 3 - p.Y, line
}

func (r *rig) holdMatrix(ps ...types.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		ph, l := matrixSwitch(p)
		r.held[[2]int{ph, l}] = true
	}
}

func (r *rig) releaseMatrix(ps ...types.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range ps {
		ph, l := matrixSwitch(p)
		delete(r.held, [2]int{ph, l})
	}
}

// nativeFor inverts RemapEvent for a logical coordinate.
func nativeFor(p types.Point) (row, col uint8) {
	row = uint8(p.X / 2)
	col = uint8(p.Y)
	if p.X%2 == 1 {
		col += 4
	}
	return row, col
}

func (r *rig) pressChip(p types.Point) {
	row, col := nativeFor(p)
	r.chip.Press(row, col)
}

func (r *rig) releaseChip(p types.Point) {
	row, col := nativeFor(p)
	r.chip.Release(row, col)
}

func (r *rig) irqPin() *platform.FakePin { return r.pins.Get(r.cfg.IRQPin) }

var _ halcore.IRQPin = (*platform.FakePin)(nil)
