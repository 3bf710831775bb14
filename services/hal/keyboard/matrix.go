package keyboard

import (
	"kbdcore-go/services/hal/internal/halcore"
	"kbdcore-go/types"
	"kbdcore-go/x/logx"
)

const (
	matrixOutPins = 3
	matrixInPins  = 7
	matrixPhases  = 1 << matrixOutPins
)

// chartEntry picks the physical column an input bit represents: xLow in
// phases 4..7, xHigh in phases 0..3.
type chartEntry struct {
	bit   uint8
	xLow  uint8
	xHigh uint8
}

var chart = [matrixInPins]chartEntry{
	{1, 0, 1},
	{2, 2, 3},
	{4, 4, 5},
	{8, 6, 7},
	{16, 8, 9},
	{32, 10, 11},
	{64, 12, 13},
}

// DecodeMatrix appends the coordinate of every asserted bit in inputs (bit j
// set means sense line j read low) for the given phase.
func DecodeMatrix(phase, inputs uint8, dst []types.Point) []types.Point {
	for _, c := range chart {
		if inputs&c.bit == 0 {
			continue
		}
		var x, y int
		if phase > 3 {
			x, y = int(c.xLow), int(phase)-4
		} else {
			x, y = int(c.xHigh), int(phase)
		}
		// Scan order runs bottom-up; rows are labelled top-down.
		y = 3 - y
		dst = append(dst, types.Point{X: x, Y: y})
	}
	return dst
}

// MatrixReader scans a key matrix behind a 3-to-8 decoder. Each Update
// rebuilds the list from scratch, so it is a snapshot rather than an event
// stream. A disconnected line reads as "not pressed".
type MatrixReader struct {
	out [matrixOutPins]halcore.GPIOPin
	in  [matrixInPins]halcore.GPIOPin

	keys        []types.Point
	initialized bool
	log         logx.Logger
}

// NewMatrixReader takes the decoder select lines (LSB first) and the sense
// lines (bit 0 first).
func NewMatrixReader(out [matrixOutPins]halcore.GPIOPin, in [matrixInPins]halcore.GPIOPin) *MatrixReader {
	return &MatrixReader{
		out:  out,
		in:   in,
		keys: make([]types.Point, 0, Rows*Cols),
		log:  logx.Tag("kbd/matrix"),
	}
}

func (m *MatrixReader) Begin() bool {
	m.initialized = false
	for _, p := range m.out {
		if err := p.ConfigureOutput(false); err != nil {
			m.log.Warn("output", p.Number(), "configure failed:", err)
			return false
		}
	}
	for _, p := range m.in {
		if err := p.ConfigureInput(halcore.PullUp); err != nil {
			m.log.Warn("input", p.Number(), "configure failed:", err)
			return false
		}
	}
	m.initialized = true
	return true
}

// Initialized reports whether the last Begin completed.
func (m *MatrixReader) Initialized() bool { return m.initialized }

func (m *MatrixReader) Update() {
	m.keys = m.keys[:0]
	for phase := uint8(0); phase < matrixPhases; phase++ {
		m.drive(phase)
		m.keys = DecodeMatrix(phase, m.sample(), m.keys)
	}
}

func (m *MatrixReader) drive(phase uint8) {
	for i, p := range m.out {
		p.Set(phase&(1<<i) != 0)
	}
}

// sample returns one bit per sense line; lines are active low.
func (m *MatrixReader) sample() uint8 {
	var bits uint8
	for j, p := range m.in {
		if !p.Get() {
			bits |= 1 << j
		}
	}
	return bits
}

func (m *MatrixReader) Keys() []types.Point { return m.keys }

// Close parks the decoder at phase 0 and releases the sense pulls.
func (m *MatrixReader) Close() error {
	m.drive(0)
	for _, p := range m.in {
		if err := p.ConfigureInput(halcore.PullNone); err != nil {
			return err
		}
	}
	m.keys = m.keys[:0]
	m.initialized = false
	return nil
}
