// services/hal/internal/irqflag/flag.go

// Package irqflag hands a hardware interrupt over to the polling loop.
//
// The contract is single-writer per direction: only the interrupt handler
// sets the flag, only the scan routine clears it. The handler performs no
// bus I/O and never blocks.
package irqflag

import (
	"sync/atomic"

	"kbdcore-go/services/hal/internal/halcore"
)

type Flag struct {
	pending atomic.Bool
	fires   atomic.Uint32

	pin halcore.IRQPin
}

// Set marks an event as pending. Safe to call from interrupt context.
func (f *Flag) Set() {
	f.pending.Store(true)
	f.fires.Add(1)
}

// Pending reports whether an event is waiting to be serviced.
func (f *Flag) Pending() bool { return f.pending.Load() }

// Clear is called by the scan routine once the hardware reports no more events.
func (f *Flag) Clear() { f.pending.Store(false) }

// Fires counts handler invocations since Attach.
func (f *Flag) Fires() uint32 { return f.fires.Load() }

// Attach configures pin as an input and installs a handler that only sets
// the flag. Any previous attachment is released first.
func (f *Flag) Attach(pin halcore.IRQPin, pull halcore.Pull, edge halcore.Edge) error {
	f.Detach()
	if err := pin.ConfigureInput(pull); err != nil {
		return err
	}
	if err := pin.SetIRQ(edge, f.Set); err != nil {
		return err
	}
	f.pin = pin
	f.fires.Store(0)
	return nil
}

// Detach removes the handler and leaves the flag clear.
func (f *Flag) Detach() {
	if f.pin != nil {
		_ = f.pin.ClearIRQ()
		f.pin = nil
	}
	f.Clear()
}
