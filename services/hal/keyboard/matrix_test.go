package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbdcore-go/types"
)

func TestDecodeMatrixChart(t *testing.T) {
	cases := []struct {
		phase, inputs uint8
		want          []types.Point
	}{
		{0, 0x01, []types.Point{{X: 1, Y: 3}}},
		{4, 0x01, []types.Point{{X: 0, Y: 3}}},
		{3, 0x40, []types.Point{{X: 13, Y: 0}}},
		{7, 0x40, []types.Point{{X: 12, Y: 0}}},
		{5, 0x05, []types.Point{{X: 0, Y: 2}, {X: 4, Y: 2}}},
		{2, 0x00, nil},
	}
	for _, c := range cases {
		got := DecodeMatrix(c.phase, c.inputs, nil)
		assert.Equal(t, c.want, got, "phase=%d inputs=%#x", c.phase, c.inputs)
	}
}

func TestDecodeMatrixIsDeterministicAndCoversGrid(t *testing.T) {
	seen := make(map[types.Point]bool)
	for phase := uint8(0); phase < matrixPhases; phase++ {
		for bit := 0; bit < matrixInPins; bit++ {
			in := uint8(1) << bit
			a := DecodeMatrix(phase, in, nil)
			b := DecodeMatrix(phase, in, nil)
			require.Equal(t, a, b)
			require.Len(t, a, 1)
			p := a[0]
			assert.False(t, seen[p], "duplicate coordinate %v", p)
			seen[p] = true
			assert.True(t, p.X >= 0 && p.X < Cols && p.Y >= 0 && p.Y < Rows, "out of grid: %v", p)
		}
	}
	assert.Len(t, seen, Rows*Cols)

	// Every input combination decodes to the union of its bits.
	for phase := uint8(0); phase < matrixPhases; phase++ {
		for in := 0; in < 1<<matrixInPins; in++ {
			got := DecodeMatrix(phase, uint8(in), nil)
			assert.Len(t, got, popcount(uint8(in)))
			assert.Equal(t, got, DecodeMatrix(phase, uint8(in), nil))
		}
	}
}

func popcount(b uint8) int {
	n := 0
	for ; b != 0; b &= b - 1 {
		n++
	}
	return n
}

func TestMatrixReaderSnapshotClearsOnIdleScan(t *testing.T) {
	r := newRig(t, false)
	k, err := r.keyboard(t, types.BoardMatrix)
	require.NoError(t, err)
	require.Equal(t, types.BoardMatrix, k.Board())

	a, q := types.Point{X: 2, Y: 2}, types.Point{X: 1, Y: 1}
	r.holdMatrix(a, q)
	k.Update()
	assert.ElementsMatch(t, []types.Point{a, q}, k.Keys())

	// Repeating the scan with the same levels yields the same set.
	k.Update()
	assert.ElementsMatch(t, []types.Point{a, q}, k.Keys())

	r.releaseMatrix(a, q)
	k.Update()
	assert.Empty(t, k.Keys(), "idle matrix scan must clear the list")
}

func TestMatrixReaderPinSetup(t *testing.T) {
	r := newRig(t, false)
	_, err := r.keyboard(t, types.BoardMatrix)
	require.NoError(t, err)

	for _, n := range r.cfg.OutPins {
		assert.True(t, r.pins.Get(n).IsOutput(), "pin %d", n)
	}
	for _, n := range r.cfg.InPins {
		assert.False(t, r.pins.Get(n).IsOutput(), "pin %d", n)
	}
}
