// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"tinygo.org/x/drivers"

	"kbdcore-go/services/hal/internal/drvshim"
	halcore "kbdcore-go/services/hal/internal/halcore"
	"kbdcore-go/services/hal/internal/platform/boards"
	"kbdcore-go/services/hal/internal/platform/setups"
)

// -----------------------------------------------------------------------------
// Defaults used by hal.Run on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

// DefaultI2CFactory configures the controllers named by the selected setup.
func DefaultI2CFactory() halcore.I2CBusFactory {
	return NewI2CFactory(boards.Selected, GetSelectedPlan())
}

// NewI2CFactory configures each planned controller the board actually has.
// Each bus is wrapped in a timeout shim so a wedged transaction reports
// failure instead of stalling the caller.
func NewI2CFactory(board boards.Board, plan setups.ResourcePlan) halcore.I2CBusFactory {
	f := &rp2I2CFactory{buses: make(map[string]drivers.I2C)}
	for _, p := range plan.I2C {
		hw := i2cByID(p.ID)
		if hw == nil || !board.HasI2C(p.ID) {
			println("[platform] no controller", p.ID, "on", board.Name)
			continue
		}
		if !board.ValidPin(p.SDA) || !board.ValidPin(p.SCL) {
			println("[platform]", p.ID, "pins out of range")
			continue
		}
		hz := p.Hz
		if hz == 0 {
			hz = 400 * machine.KHz
		}
		if err := hw.Configure(machine.I2CConfig{
			Frequency: hz,
			SDA:       machine.Pin(p.SDA),
			SCL:       machine.Pin(p.SCL),
		}); err != nil {
			println("[platform]", p.ID, "configure failed:", err.Error())
			continue
		}
		f.buses[p.ID] = drvshim.NewI2C(hw)
	}
	return f
}

func i2cByID(id string) *machine.I2C {
	switch id {
	case "i2c0":
		return machine.I2C0
	case "i2c1":
		return machine.I2C1
	}
	return nil
}

// DefaultPinFactory returns a GPIO factory that maps logical numbers directly
// to machine.Pin(n). This matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// ---- I²C implementation ----

type rp2I2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *rp2I2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// ---- GPIO implementation (includes IRQ support) ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if !boards.Selected.ValidPin(n) {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }

func (r *rp2Pin) Number() int { return r.n }

// IRQ support. The RP2 port provides SetInterrupt with PinChange flags.
func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	change := toPinChange(edge)
	return r.p.SetInterrupt(change, func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		// Zero value is a no-op/disabled.
		var zero machine.PinChange
		return zero
	}
}
