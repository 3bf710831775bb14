package keyboard

import "kbdcore-go/types"

// resolve rebuilds dst from the pressed keys. The first pass classifies each
// key and sets modifier flags; the second resolves every regular key with one
// gate for the whole frame: ctrl, shift or caps lock selects the secondary
// character. Keys the layout does not know are skipped.
func resolve(dst *types.KeysState, scratch []types.KeyDescriptor, keys []types.Point, layout Layout, capsLocked bool) []types.KeyDescriptor {
	dst.Reset()
	regular := scratch[:0]

	for _, p := range keys {
		d, ok := layout.Lookup(p)
		if !ok {
			continue
		}
		switch d.Kind {
		case types.KeyTab:
			dst.Tab = true
			dst.HIDKeys = appendHID(dst.HIDKeys, d.HID)
		case types.KeyFn:
			dst.Fn = true
		case types.KeyShift:
			dst.Shift = true
			dst.Modifiers |= types.ModShift
		case types.KeyCtrl:
			dst.Ctrl = true
			dst.Modifiers |= types.ModCtrl
		case types.KeyOpt:
			dst.Opt = true
			dst.Modifiers |= types.ModOpt
		case types.KeyAlt:
			dst.Alt = true
			dst.Modifiers |= types.ModAlt
		case types.KeyDelete:
			dst.Del = true
			dst.HIDKeys = appendHID(dst.HIDKeys, d.HID)
		case types.KeyEnter:
			dst.Enter = true
			dst.HIDKeys = appendHID(dst.HIDKeys, d.HID)
		case types.KeySpace:
			dst.Space = true
			regular = append(regular, d)
		default:
			regular = append(regular, d)
		}
	}

	secondary := dst.Ctrl || dst.Shift || capsLocked
	for _, d := range regular {
		if secondary {
			dst.Word = append(dst.Word, d.Secondary)
		} else {
			dst.Word = append(dst.Word, d.Primary)
		}
		dst.HIDKeys = appendHID(dst.HIDKeys, d.HID)
	}
	return regular
}

func appendHID(dst []uint8, hid uint8) []uint8 {
	if hid == 0 {
		return dst
	}
	return append(dst, hid)
}
