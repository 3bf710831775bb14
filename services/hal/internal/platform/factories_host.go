// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"errors"
	"sync"

	"kbdcore-go/services/hal/internal/halcore"

	"tinygo.org/x/drivers"
)

// ErrNoDevice is returned by HostI2C when nothing answers on an address.
var ErrNoDevice = errors.New("i2c: no device at address")

// ----------------------------- I²C (host) ------------------------------------

// I2CTarget emulates one device on a host bus.
type I2CTarget interface {
	Tx(w, r []byte) error
}

// HostI2C implements tinygo drivers.I2C for host-side tests. Transactions are
// routed to attached targets by address; any other address NACKs.
type HostI2C struct {
	mu      sync.Mutex
	targets map[uint16]I2CTarget
	LastTx  struct {
		Addr uint16
		W    []byte
		Rn   int
	}
	Count int
}

// Attach places dev on the bus at addr, replacing any previous target.
func (h *HostI2C) Attach(addr uint16, dev I2CTarget) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.targets == nil {
		h.targets = make(map[uint16]I2CTarget)
	}
	h.targets[addr] = dev
}

// Detach removes the target at addr.
func (h *HostI2C) Detach(addr uint16) {
	h.mu.Lock()
	delete(h.targets, addr)
	h.mu.Unlock()
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	h.Count++
	dev := h.targets[addr]
	h.mu.Unlock()
	if dev == nil {
		return ErrNoDevice
	}
	return dev.Tx(w, r)
}

type hostI2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *hostI2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// NewI2CFactory exposes the given host buses by id.
func NewI2CFactory(buses map[string]*HostI2C) halcore.I2CBusFactory {
	f := &hostI2CFactory{buses: make(map[string]drivers.I2C, len(buses))}
	for id, b := range buses {
		f.buses[id] = b
	}
	return f
}

// DefaultI2CFactory creates empty host I²C buses "i2c0" and "i2c1".
func DefaultI2CFactory() halcore.I2CBusFactory {
	return NewI2CFactory(map[string]*HostI2C{
		"i2c0": {},
		"i2c1": {},
	})
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin and IRQPin for host-side tests.
//
// An input configured with a pull settles to the pulled level until a test
// drives it with Set. An optional Sense hook overrides Get, which lets a test
// model lines whose level depends on other pins (a key matrix).
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	irqEdge halcore.Edge
	irqFunc func()
	sense   func() bool
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	switch pull {
	case halcore.PullUp:
		p.level = true
	case halcore.PullDown:
		p.level = false
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	irq := p.irqFunc
	want := irqWanted(p.irqEdge, edgeFrom(old, level))
	p.mu.Unlock()
	if want && irq != nil {
		irq() // ISR-style callback
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v, sense := p.level, p.sense
	p.mu.RUnlock()
	if sense != nil {
		return sense()
	}
	return v
}

// Sense installs a level source consulted by Get. nil restores the latch.
func (p *FakePin) Sense(fn func() bool) {
	p.mu.Lock()
	p.sense = fn
	p.mu.Unlock()
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Pull returns the pull last configured with ConfigureInput.
func (p *FakePin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

// HasIRQ reports whether a handler is installed.
func (p *FakePin) HasIRQ() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.irqFunc != nil
}

func (p *FakePin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = halcore.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) halcore.Edge {
	switch {
	case !old && new:
		return halcore.EdgeRising
	case old && !new:
		return halcore.EdgeFalling
	default:
		return halcore.EdgeNone
	}
}

func irqWanted(cfg, seen halcore.Edge) bool {
	switch cfg {
	case halcore.EdgeBoth:
		return seen == halcore.EdgeRising || seen == halcore.EdgeFalling
	case halcore.EdgeNone:
		return false
	default:
		return cfg == seen
	}
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 {
		return nil, false
	}
	return f.pin(n), true
}

// Get exposes the underlying *FakePin for tests (e.g. to drive IRQ edges).
// The pin is created on first use.
func (f *HostPinFactory) Get(n int) *FakePin { return f.pin(n) }

func (f *HostPinFactory) pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

// NewPinFactory returns an empty host pin factory.
func NewPinFactory() *HostPinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() halcore.PinFactory { return NewPinFactory() }
