// Package keyboard turns raw key matrix or keypad-controller state into
// logical coordinates and resolved characters.
//
// A Keyboard owns exactly one Reader. It is driven from a single polling
// loop; only the keypad controller's interrupt handler runs elsewhere, and it
// does nothing but set a flag.
package keyboard

import (
	"strconv"

	"kbdcore-go/errcode"
	"kbdcore-go/services/hal/internal/halcore"
	"kbdcore-go/types"
	"kbdcore-go/x/logx"
	"kbdcore-go/x/mathx"
	"kbdcore-go/x/timex"
)

// Options wires a Keyboard to its platform. Zero fields take defaults:
// DefaultLayout, the system clock and types.DefaultKeyboardConfig wiring.
type Options struct {
	Config types.KeyboardConfig
	I2C    halcore.I2CBusFactory
	Pins   halcore.PinFactory
	Layout Layout
	Clock  timex.Clock
}

type Keyboard struct {
	cfg    types.KeyboardConfig
	i2c    halcore.I2CBusFactory
	pins   halcore.PinFactory
	layout Layout
	clock  timex.Clock

	reader Reader
	board  types.BoardType
	ready  bool

	capsLocked  bool
	dimmed      bool
	lastPressed int64
	lastCount   int

	state   types.KeysState
	regular []types.KeyDescriptor

	log logx.Logger
}

func New(opts Options) *Keyboard {
	k := &Keyboard{
		cfg:    opts.Config.WithDefaults(),
		i2c:    opts.I2C,
		pins:   opts.Pins,
		layout: opts.Layout,
		clock:  opts.Clock,
		log:    logx.Tag("kbd"),
	}
	if k.layout == nil {
		k.layout = DefaultLayout()
	}
	if k.clock == nil {
		k.clock = timex.System{}
	}
	k.lastPressed = k.clock.NowMs()
	return k
}

// Init selects the backend. BoardAuto tries the keypad controller first and
// falls back to the GPIO matrix; a forced board gets no fallback. On a forced
// board whose Begin fails the reader is still owned and an error returned.
func (k *Keyboard) Init(board types.BoardType) error {
	k.release()

	switch board {
	case types.BoardAuto:
		if r, err := k.newController(); err == nil {
			if r.Begin() {
				k.adopt(r, types.BoardController, true)
				k.log.Info("detected tca8418 keypad controller")
				return nil
			}
			_ = r.Close()
		} else {
			k.log.Info("keypad controller unavailable:", err)
		}
		k.log.Info("falling back to gpio matrix")
		return k.initMatrix()

	case types.BoardController:
		r, err := k.newController()
		if err != nil {
			return err
		}
		ok := r.Begin()
		k.adopt(r, types.BoardController, ok)
		if !ok {
			return &errcode.E{C: errcode.NotInitialized, Op: "keyboard.init", Msg: "tca8418 begin failed", Err: r.Err()}
		}
		return nil

	case types.BoardMatrix:
		return k.initMatrix()
	}
	return &errcode.E{C: errcode.InvalidParams, Op: "keyboard.init", Err: types.ErrUnknownBoard}
}

func (k *Keyboard) initMatrix() error {
	r, err := k.newMatrix()
	if err != nil {
		return err
	}
	ok := r.Begin()
	k.adopt(r, types.BoardMatrix, ok)
	if !ok {
		return &errcode.E{C: errcode.NotInitialized, Op: "keyboard.init", Msg: "gpio matrix setup failed"}
	}
	return nil
}

func (k *Keyboard) adopt(r Reader, board types.BoardType, ready bool) {
	k.reader, k.board, k.ready = r, board, ready
	k.lastCount = 0
}

func (k *Keyboard) newController() (*ControllerReader, error) {
	if k.i2c == nil {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "keyboard.controller", Msg: k.cfg.I2CBus}
	}
	bus, ok := k.i2c.ByID(k.cfg.I2CBus)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownBus, Op: "keyboard.controller", Msg: k.cfg.I2CBus}
	}
	pin, err := k.pin(k.cfg.IRQPin)
	if err != nil {
		return nil, err
	}
	irq, ok := pin.(halcore.IRQPin)
	if !ok {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "keyboard.controller", Msg: "irq pin has no interrupt support"}
	}
	return NewControllerReader(bus, irq, k.cfg.Address), nil
}

func (k *Keyboard) newMatrix() (*MatrixReader, error) {
	if len(k.cfg.OutPins) != matrixOutPins || len(k.cfg.InPins) != matrixInPins {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "keyboard.matrix", Err: types.ErrMatrixPins}
	}
	var out [matrixOutPins]halcore.GPIOPin
	var in [matrixInPins]halcore.GPIOPin
	for i, n := range k.cfg.OutPins {
		p, err := k.pin(n)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	for i, n := range k.cfg.InPins {
		p, err := k.pin(n)
		if err != nil {
			return nil, err
		}
		in[i] = p
	}
	return NewMatrixReader(out, in), nil
}

func (k *Keyboard) pin(n int) (halcore.GPIOPin, error) {
	if k.pins != nil {
		if p, ok := k.pins.ByNumber(n); ok {
			return p, nil
		}
	}
	return nil, &errcode.E{C: errcode.UnknownPin, Op: "keyboard.pin", Msg: strconv.Itoa(n)}
}

// Reconfigure releases the current reader, then runs Init.
func (k *Keyboard) Reconfigure(board types.BoardType) error {
	return k.Init(board)
}

// Close releases the reader. The Keyboard may be re-initialised afterwards.
func (k *Keyboard) Close() error {
	return k.release()
}

func (k *Keyboard) release() error {
	if k.reader == nil {
		return nil
	}
	err := k.reader.Close()
	if err != nil {
		k.log.Warn("reader close:", err)
	}
	k.reader, k.board, k.ready = nil, types.BoardAuto, false
	k.lastCount = 0
	return err
}

// Board returns the backend in use; BoardAuto while no reader is owned.
func (k *Keyboard) Board() types.BoardType { return k.board }

// Ready reports whether the owned reader initialised successfully.
func (k *Keyboard) Ready() bool { return k.ready }

// Config returns the effective configuration.
func (k *Keyboard) Config() types.KeyboardConfig { return k.cfg }

// Update runs one scan and refreshes the idle timestamp while keys are held.
func (k *Keyboard) Update() {
	if k.reader == nil {
		return
	}
	k.reader.Update()
	if len(k.reader.Keys()) > 0 {
		k.lastPressed = k.clock.NowMs()
	}
}

// Keys returns the current pressed-key list. Do not modify it.
func (k *Keyboard) Keys() []types.Point {
	if k.reader == nil {
		return nil
	}
	return k.reader.Keys()
}

// IsPressed returns the number of keys held.
func (k *Keyboard) IsPressed() int { return len(k.Keys()) }

// KeyAt returns the i-th pressed key.
func (k *Keyboard) KeyAt(i int) (types.Point, bool) {
	keys := k.Keys()
	if i < 0 || i >= len(keys) {
		return types.Point{X: -1, Y: -1}, false
	}
	return keys[i], true
}

func (k *Keyboard) KeyNum(p types.Point) int { return KeyNum(p) }

// IsKeyPressing reports whether the key with packed number num is held.
func (k *Keyboard) IsKeyPressing(num int) bool {
	if num <= 0 {
		return false
	}
	for _, p := range k.Keys() {
		if KeyNum(p) == num {
			return true
		}
	}
	return false
}

// WaitForRelease re-scans every WaitPollMs until key num is released or
// timeoutMs elapses. timeoutMs == 0 waits forever. It reports whether the
// release was seen. This is the only blocking call.
func (k *Keyboard) WaitForRelease(num int, timeoutMs int) bool {
	start := k.clock.NowMs()
	for {
		k.Update()
		if !k.IsKeyPressing(num) {
			return true
		}
		if timeoutMs > 0 && k.clock.NowMs()-start >= int64(timeoutMs) {
			return false
		}
		k.clock.Sleep(mathx.Max(k.cfg.WaitPollMs, 1))
	}
}

// IsChanged reports whether the number of held keys differs from the last
// call. Swapping one key for another in a single frame is not a change.
func (k *Keyboard) IsChanged() bool {
	n := len(k.Keys())
	if n == k.lastCount {
		return false
	}
	k.lastCount = n
	return true
}

// ResolveState rebuilds the keys state buffer from the current list. The
// returned value shares slices with the buffer and is valid until the next
// call; use Clone to keep it.
func (k *Keyboard) ResolveState() types.KeysState {
	k.regular = resolve(&k.state, k.regular, k.Keys(), k.layout, k.capsLocked)
	return k.state
}

// KeysState returns the buffer produced by the last ResolveState.
func (k *Keyboard) KeysState() types.KeysState { return k.state }

func (k *Keyboard) CapsLocked() bool       { return k.capsLocked }
func (k *Keyboard) SetCapsLocked(on bool)  { k.capsLocked = on }
func (k *Keyboard) IsDimmed() bool         { return k.dimmed }
func (k *Keyboard) SetDimmed(on bool)      { k.dimmed = on }
func (k *Keyboard) LastPressedTime() int64 { return k.lastPressed }

// ResetLastPressedTime restarts the idle timer.
func (k *Keyboard) ResetLastPressedTime() { k.lastPressed = k.clock.NowMs() }
