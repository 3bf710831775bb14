// Package tca8418 provides a TinyGo driver for the TI TCA8418 I2C keypad
// scan controller.
//
// Design notes (datasheet references):
// • 8-bit registers, single-byte write (reg, val) and write-then-read access.
// • Up to 8 rows x 10 columns of matrix; remaining lines usable as GPIO.
// • Key events queue in a 10-entry FIFO read through KEY_EVENT_A. Bit 7 of an
//   event is set on press; bits 6:0 hold a 1-based key code (row*10 + col + 1).
// • INT_STAT bits are cleared by writing 1; K_INT stays set while the FIFO
//   still holds events.
//
// Every method performs bounded bus transactions and reports failure as a
// false/absent result. The last bus error is kept for diagnostics.
package tca8418

import (
	"tinygo.org/x/drivers"
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address uint16
}

// Device wraps an I2C connection to a TCA8418.
type Device struct {
	bus     drivers.I2C
	Address uint16

	initialized bool
	lastErr     error

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

// New creates a Device. The I2C bus must already be configured.
// It does not touch the device; call Begin.
func New(bus drivers.I2C, cfgs ...Config) *Device {
	d := &Device{bus: bus, Address: AddressDefault}
	if len(cfgs) > 0 && cfgs[0].Address != 0 {
		d.Address = cfgs[0].Address
	}
	return d
}

// initSequence is written in order by Begin: all lines input, all lines
// generate key events, falling-edge interrupts, interrupts enabled.
var initSequence = [...][2]uint8{
	{RegGPIODir1, 0x00},
	{RegGPIODir2, 0x00},
	{RegGPIODir3, 0x00},

	{RegGPIEM1, 0xFF},
	{RegGPIEM2, 0xFF},
	{RegGPIEM3, 0xFF},

	{RegGPIOIntLvl1, 0x00},
	{RegGPIOIntLvl2, 0x00},
	{RegGPIOIntLvl3, 0x00},

	{RegGPIOIntEn1, 0xFF},
	{RegGPIOIntEn2, 0xFF},
	{RegGPIOIntEn3, 0xFF},
}

// Begin runs the fixed init sequence. Any failed write aborts the sequence
// and leaves the device uninitialised.
func (d *Device) Begin() bool {
	d.initialized = false
	for _, rv := range initSequence {
		if !d.WriteRegister(rv[0], rv[1]) {
			return false
		}
	}
	d.initialized = true
	return true
}

// Initialized reports whether the last Begin completed.
func (d *Device) Initialized() bool { return d.initialized }

// Err returns the last bus error, or nil.
func (d *Device) Err() error { return d.lastErr }

// ---------------- Register access ----------------

func (d *Device) WriteRegister(reg, val uint8) bool {
	d.w[0] = reg
	d.w[1] = val
	if err := d.bus.Tx(d.Address, d.w[:2], nil); err != nil {
		d.lastErr = err
		return false
	}
	return true
}

func (d *Device) ReadRegister(reg uint8) (uint8, bool) {
	d.w[0] = reg
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:1]); err != nil {
		d.lastErr = err
		return 0, false
	}
	return d.r[0], true
}

func (d *Device) setBits(reg, mask uint8) bool {
	v, ok := d.ReadRegister(reg)
	if !ok {
		return false
	}
	return d.WriteRegister(reg, v|mask)
}

func (d *Device) clearBits(reg, mask uint8) bool {
	v, ok := d.ReadRegister(reg)
	if !ok {
		return false
	}
	return d.WriteRegister(reg, v&^mask)
}

// ---------------- Matrix configuration ----------------

// lowMask returns n contiguous low bits set.
func lowMask(n uint8) uint8 {
	if n >= 8 {
		return 0xFF
	}
	return uint8(1)<<n - 1
}

// Matrix assigns the first rows/cols lines to the keypad scanner.
// rows > 8 or cols > 10 is rejected without bus traffic; a zero axis
// leaves the configuration untouched.
func (d *Device) Matrix(rows, cols uint8) bool {
	if rows > MaxRows || cols > MaxCols {
		return false
	}
	if rows == 0 || cols == 0 {
		return true
	}
	if !d.WriteRegister(RegKPGPIO1, lowMask(rows)) {
		return false
	}
	if !d.WriteRegister(RegKPGPIO2, lowMask(cols)) {
		return false
	}
	if cols > 8 {
		return d.WriteRegister(RegKPGPIO3, lowMask(cols-8))
	}
	return true
}

// ---------------- Interrupts, debounce, overflow ----------------

func (d *Device) EnableInterrupts() bool  { return d.setBits(RegCfg, CfgGPIIE|CfgKEIE) }
func (d *Device) DisableInterrupts() bool { return d.clearBits(RegCfg, CfgGPIIE|CfgKEIE) }

func (d *Device) EnableOverflow() bool  { return d.setBits(RegCfg, CfgOvrFlowM) }
func (d *Device) DisableOverflow() bool { return d.clearBits(RegCfg, CfgOvrFlowM) }

func (d *Device) EnableDebounce() bool  { return d.writeDebounce(0x00) }
func (d *Device) DisableDebounce() bool { return d.writeDebounce(0xFF) }

func (d *Device) writeDebounce(v uint8) bool {
	return d.WriteRegister(RegDebounceDis1, v) &&
		d.WriteRegister(RegDebounceDis2, v) &&
		d.WriteRegister(RegDebounceDis3, v)
}

// ---------------- Event FIFO ----------------

// Available returns the number of queued key events (0 on bus failure).
func (d *Device) Available() uint8 {
	v, ok := d.ReadRegister(RegKeyLckEC)
	if !ok {
		return 0
	}
	return v & eventCountMask
}

// ReadEvent pops one raw event byte. Zero means the FIFO is empty.
func (d *Device) ReadEvent() (uint8, bool) {
	return d.ReadRegister(RegKeyEventA)
}

// Flush drains the FIFO, reads the GPIO interrupt status registers to clear
// them and clears K_INT and GPI_INT. It returns the number of events dropped.
func (d *Device) Flush() int {
	n := 0
	// The FIFO holds at most 10 events; the bound guards against a bus that
	// keeps returning non-zero garbage.
	for n < 2*MaxCols {
		ev, ok := d.ReadEvent()
		if !ok || ev == 0 {
			break
		}
		n++
	}
	d.ReadRegister(RegGPIOIntStat1)
	d.ReadRegister(RegGPIOIntStat2)
	d.ReadRegister(RegGPIOIntStat3)
	d.WriteRegister(RegIntStat, IntStatGPI|IntStatK)
	return n
}

// ---------------- GPIO on non-matrix lines ----------------

type PinMode uint8

const (
	PinInput PinMode = iota
	PinInputPullup
	PinOutput
)

func pinReg(base, pin uint8) (uint8, uint8) { return base + pin/8, 1 << (pin % 8) }

// PinMode configures a line that is not part of the matrix.
func (d *Device) PinMode(pin uint8, mode PinMode) bool {
	if pin > MaxPin {
		return false
	}
	reg, bit := pinReg(RegGPIODir1, pin)
	var ok bool
	if mode == PinOutput {
		ok = d.setBits(reg, bit)
	} else {
		ok = d.clearBits(reg, bit)
	}
	if !ok {
		return false
	}
	// GPIO_PULL bits disable the pull-up when set.
	reg, bit = pinReg(RegGPIOPull1, pin)
	if mode == PinInput {
		return d.setBits(reg, bit)
	}
	return d.clearBits(reg, bit)
}

// DigitalRead returns the line level; ok is false on bus failure.
func (d *Device) DigitalRead(pin uint8) (level bool, ok bool) {
	if pin > MaxPin {
		return false, false
	}
	reg, bit := pinReg(RegGPIODatStat1, pin)
	v, ok := d.ReadRegister(reg)
	if !ok {
		return false, false
	}
	return v&bit != 0, true
}

func (d *Device) DigitalWrite(pin uint8, level bool) bool {
	if pin > MaxPin {
		return false
	}
	reg, bit := pinReg(RegGPIODatOut1, pin)
	if level {
		return d.setBits(reg, bit)
	}
	return d.clearBits(reg, bit)
}
