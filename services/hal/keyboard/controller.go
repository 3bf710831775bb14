package keyboard

import (
	"kbdcore-go/drivers/tca8418"
	"kbdcore-go/errcode"
	"kbdcore-go/services/hal/internal/halcore"
	"kbdcore-go/services/hal/internal/irqflag"
	"kbdcore-go/types"
	"kbdcore-go/x/logx"

	"tinygo.org/x/drivers"
)

// Native matrix wired to the keypad controller.
const (
	controllerRows = 7
	controllerCols = 8
)

// RemapEvent converts a native controller row/col into the logical grid.
// Both axes are derived from the original values.
func RemapEvent(ev tca8418.Event) types.Point {
	row, col := int(ev.Row), int(ev.Col)
	x := row * 2
	if col > 3 {
		x++
	}
	y := (col + 4) % 4
	return types.Point{X: x, Y: y}
}

// ControllerReader services a TCA8418 keypad controller. The INT line only
// sets a pending flag; Update drains at most one FIFO event per call and keeps
// an incremental list (add on press, remove on release), so keys persist
// across idle scans.
type ControllerReader struct {
	dev  *tca8418.Device
	irq  halcore.IRQPin
	flag irqflag.Flag

	keys        []types.Point
	initialized bool
	log         logx.Logger
}

func NewControllerReader(bus drivers.I2C, irq halcore.IRQPin, address uint16) *ControllerReader {
	return &ControllerReader{
		dev:  tca8418.New(bus, tca8418.Config{Address: address}),
		irq:  irq,
		keys: make([]types.Point, 0, Rows*Cols),
		log:  logx.Tag("kbd/tca8418"),
	}
}

// Begin initialises the controller, configures the 7x8 matrix, discards any
// stale events and arms the interrupt.
func (c *ControllerReader) Begin() bool {
	c.initialized = false
	if !c.dev.Begin() {
		c.log.Warn("begin failed:", c.dev.Err())
		return false
	}
	if !c.dev.Matrix(controllerRows, controllerCols) {
		c.log.Warn("matrix config failed:", c.dev.Err())
		return false
	}
	if n := c.dev.Flush(); n > 0 {
		c.log.Debug("flushed", n, "stale events")
	}
	if err := c.flag.Attach(c.irq, halcore.PullUp, halcore.EdgeFalling); err != nil {
		c.log.Warn("irq attach failed:", err)
		return false
	}
	if !c.dev.EnableInterrupts() {
		c.log.Warn("interrupt enable failed:", c.dev.Err())
		c.flag.Detach()
		return false
	}
	c.initialized = true
	return true
}

// Initialized reports whether the last Begin completed.
func (c *ControllerReader) Initialized() bool { return c.initialized }

// Err returns the last bus error seen by the driver.
func (c *ControllerReader) Err() error { return c.dev.Err() }

// Pending reports whether an interrupt is waiting to be serviced.
func (c *ControllerReader) Pending() bool { return c.flag.Pending() }

func (c *ControllerReader) Update() {
	if !c.flag.Pending() {
		return
	}
	raw, ok := c.dev.ReadEvent()
	if !ok {
		// Flag stays set; the next scan retries.
		return
	}
	if raw == 0 {
		c.flag.Clear()
		return
	}
	ev, valid := tca8418.DecodeEvent(raw)

	// K_INT is write-1-to-clear; it reads back set while the FIFO still holds
	// events, in which case the next scan drains another one.
	c.dev.WriteRegister(tca8418.RegIntStat, tca8418.IntStatK)
	if st, ok := c.dev.ReadRegister(tca8418.RegIntStat); ok && st&tca8418.IntStatK == 0 {
		c.flag.Clear()
	}

	if valid {
		c.apply(ev.Pressed, RemapEvent(ev))
	}
}

func (c *ControllerReader) apply(pressed bool, p types.Point) {
	i := indexOf(c.keys, p)
	switch {
	case pressed && i < 0:
		c.keys = append(c.keys, p)
	case !pressed && i >= 0:
		c.keys = append(c.keys[:i], c.keys[i+1:]...)
	}
}

func (c *ControllerReader) Keys() []types.Point { return c.keys }

// Close detaches the interrupt and disables controller interrupts.
func (c *ControllerReader) Close() error {
	c.flag.Detach()
	c.keys = c.keys[:0]
	wasInit := c.initialized
	c.initialized = false
	if wasInit && !c.dev.DisableInterrupts() {
		return &errcode.E{C: errcode.BusError, Op: "tca8418.close", Err: c.dev.Err()}
	}
	return nil
}
