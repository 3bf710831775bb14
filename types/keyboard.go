package types

import "errors"

// Point is a logical key coordinate shared by every keyboard backend.
// X counts columns from the left, Y counts rows from the top.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BoardType selects the keyboard backend.
type BoardType uint8

const (
	BoardAuto       BoardType = iota // probe the keypad controller, fall back to the GPIO matrix
	BoardMatrix                      // GPIO matrix behind a 3-to-8 decoder
	BoardController                  // TCA8418 keypad controller on I2C
)

var ErrUnknownBoard = errors.New("unknown_board")

func (b BoardType) String() string {
	switch b {
	case BoardAuto:
		return "auto"
	case BoardMatrix:
		return "gpio_matrix"
	case BoardController:
		return "tca8418"
	default:
		return "unknown"
	}
}

// ParseBoardType accepts the names produced by String.
func ParseBoardType(s string) (BoardType, error) {
	switch s {
	case "", "auto":
		return BoardAuto, nil
	case "gpio_matrix", "matrix":
		return BoardMatrix, nil
	case "tca8418", "controller":
		return BoardController, nil
	}
	return BoardAuto, ErrUnknownBoard
}

func (b BoardType) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *BoardType) UnmarshalText(p []byte) error {
	v, err := ParseBoardType(string(p))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// KeyKind classifies a key for state resolution.
type KeyKind uint8

const (
	KeyRegular KeyKind = iota
	KeyTab
	KeyFn
	KeyShift
	KeyCtrl
	KeyOpt
	KeyAlt
	KeyDelete
	KeyEnter
	KeySpace
)

// HID modifier bits carried in KeysState.Modifiers.
const (
	ModCtrl  uint8 = 1 << 0
	ModShift uint8 = 1 << 1
	ModAlt   uint8 = 1 << 2
	ModOpt   uint8 = 1 << 3
)

// KeyDescriptor is one entry of a key mapping table.
type KeyDescriptor struct {
	Kind      KeyKind `json:"kind"`
	Primary   rune    `json:"primary"`
	Secondary rune    `json:"secondary"`
	HID       uint8   `json:"hid,omitempty"` // USB HID usage id, 0 when none
}

// KeysState is the per-frame aggregate produced by the resolution pass.
type KeysState struct {
	Tab   bool `json:"tab"`
	Fn    bool `json:"fn"`
	Shift bool `json:"shift"`
	Ctrl  bool `json:"ctrl"`
	Opt   bool `json:"opt"`
	Alt   bool `json:"alt"`
	Del   bool `json:"del"`
	Enter bool `json:"enter"`
	Space bool `json:"space"`

	Modifiers uint8   `json:"modifiers"`
	Word      []rune  `json:"word"`
	HIDKeys   []uint8 `json:"hid_keys"`
}

// Reset clears the buffer while keeping slice capacity.
func (s *KeysState) Reset() {
	word, hid := s.Word[:0], s.HIDKeys[:0]
	*s = KeysState{Word: word, HIDKeys: hid}
}

// Clone returns a copy that does not share slices with s.
func (s KeysState) Clone() KeysState {
	c := s
	c.Word = append([]rune(nil), s.Word...)
	c.HIDKeys = append([]uint8(nil), s.HIDKeys...)
	return c
}

// String returns the resolved characters.
func (s KeysState) String() string { return string(s.Word) }

// KeyboardState is the retained payload published on hal/keyboard/state.
type KeyboardState struct {
	Board         BoardType `json:"board"`
	Keys          []Point   `json:"keys"`
	State         KeysState `json:"state"`
	CapsLocked    bool      `json:"caps_locked"`
	Dimmed        bool      `json:"dimmed"`
	LastPressedMs int64     `json:"last_pressed_ms"`
	TS            int64     `json:"ts_ms"`
}
