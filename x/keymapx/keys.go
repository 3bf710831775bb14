// Package keymapx parses the compact key notation used by keyboard layouts.
//
// A key is written as one or two characters ("aA": primary a, secondary A;
// "x": both x) or as a named key in braces ("{shift}", "{enter}", ...).
// USB HID usage ids are derived from the primary character on a US layout.
package keymapx

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"kbdcore-go/types"
)

var (
	ErrEmptyKey   = errors.New("keymap: empty key")
	ErrUnknownKey = errors.New("keymap: unknown named key")
	ErrKeyTooLong = errors.New("keymap: key has more than two characters")
)

var named = map[string]types.KeyDescriptor{
	"tab":   {Kind: types.KeyTab, HID: 0x2B},
	"fn":    {Kind: types.KeyFn},
	"shift": {Kind: types.KeyShift},
	"ctrl":  {Kind: types.KeyCtrl},
	"opt":   {Kind: types.KeyOpt},
	"alt":   {Kind: types.KeyAlt},
	"del":   {Kind: types.KeyDelete, HID: 0x2A},
	"enter": {Kind: types.KeyEnter, HID: 0x28},
	"space": {Kind: types.KeySpace, Primary: ' ', Secondary: ' ', HID: 0x2C},
}

// ParseKey decodes one key in the compact notation.
func ParseKey(s string) (types.KeyDescriptor, error) {
	if s == "" {
		return types.KeyDescriptor{}, ErrEmptyKey
	}
	if len(s) > 2 && strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		d, ok := named[s[1:len(s)-1]]
		if !ok {
			return types.KeyDescriptor{}, ErrUnknownKey
		}
		return d, nil
	}

	p, n := utf8.DecodeRuneInString(s)
	sec := p
	if rest := s[n:]; rest != "" {
		r, m := utf8.DecodeRuneInString(rest)
		if m != len(rest) {
			return types.KeyDescriptor{}, ErrKeyTooLong
		}
		sec = r
	}
	return types.KeyDescriptor{Kind: types.KeyRegular, Primary: p, Secondary: sec, HID: HIDFor(p)}, nil
}

// ParseRow decodes a row of keys.
func ParseRow(keys []string) ([]types.KeyDescriptor, error) {
	out := make([]types.KeyDescriptor, 0, len(keys))
	for _, k := range keys {
		d, err := ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// HIDFor returns the US-layout usage id of an unshifted character, or 0.
func HIDFor(r rune) uint8 {
	switch {
	case r >= 'a' && r <= 'z':
		return 0x04 + uint8(r-'a')
	case r >= 'A' && r <= 'Z':
		return 0x04 + uint8(r-'A')
	case r >= '1' && r <= '9':
		return 0x1E + uint8(r-'1')
	case r == '0':
		return 0x27
	}
	switch r {
	case ' ':
		return 0x2C
	case '-':
		return 0x2D
	case '=':
		return 0x2E
	case '[':
		return 0x2F
	case ']':
		return 0x30
	case '\\':
		return 0x31
	case ';':
		return 0x33
	case '\'':
		return 0x34
	case '`':
		return 0x35
	case ',':
		return 0x36
	case '.':
		return 0x37
	case '/':
		return 0x38
	}
	return 0
}

// Format renders a descriptor back into the compact notation.
func Format(d types.KeyDescriptor) string {
	for name, n := range named {
		if n.Kind == d.Kind && d.Kind != types.KeyRegular {
			return "{" + name + "}"
		}
	}
	if d.Secondary == d.Primary {
		return string(d.Primary)
	}
	return string(d.Primary) + string(d.Secondary)
}
