package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoardType(t *testing.T) {
	cases := map[string]BoardType{
		"":            BoardAuto,
		"auto":        BoardAuto,
		"gpio_matrix": BoardMatrix,
		"matrix":      BoardMatrix,
		"tca8418":     BoardController,
		"controller":  BoardController,
	}
	for in, want := range cases {
		got, err := ParseBoardType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBoardType("floppy")
	assert.ErrorIs(t, err, ErrUnknownBoard)
	assert.Equal(t, "unknown", BoardType(9).String())
}

func TestBoardTypeJSONUsesNames(t *testing.T) {
	b, err := json.Marshal(struct {
		Board BoardType `json:"board"`
	}{BoardController})
	require.NoError(t, err)
	assert.JSONEq(t, `{"board":"tca8418"}`, string(b))

	var cfg KeyboardConfig
	require.NoError(t, json.Unmarshal([]byte(`{"board":"gpio_matrix"}`), &cfg))
	assert.Equal(t, BoardMatrix, cfg.Board)
	assert.Error(t, json.Unmarshal([]byte(`{"board":"floppy"}`), &cfg))
}

func TestKeysStateResetKeepsCapacity(t *testing.T) {
	s := KeysState{Shift: true, Modifiers: ModShift}
	s.Word = append(s.Word, 'A', 'B')
	s.HIDKeys = append(s.HIDKeys, 0x28)
	wordCap := cap(s.Word)

	s.Reset()
	assert.False(t, s.Shift)
	assert.Zero(t, s.Modifiers)
	assert.Empty(t, s.Word)
	assert.Empty(t, s.HIDKeys)
	assert.Equal(t, wordCap, cap(s.Word))
}

func TestKeysStateCloneDoesNotShare(t *testing.T) {
	s := KeysState{Word: []rune("ab"), HIDKeys: []uint8{0x2C}}
	c := s.Clone()
	s.Word[0] = 'z'
	s.HIDKeys[0] = 0
	assert.Equal(t, "ab", c.String())
	assert.Equal(t, []uint8{0x2C}, c.HIDKeys)
}
