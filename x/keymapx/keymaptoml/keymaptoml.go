// Package keymaptoml loads keyboard layouts from TOML files. It is a host
// tool dependency and is not linked into firmware.
//
//	name = "us"
//	rows = [
//	  ["`~", "1!", "2@", ...],
//	  ["{tab}", "qQ", ...],
//	]
package keymaptoml

import (
	"errors"
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"kbdcore-go/types"
	"kbdcore-go/x/keymapx"
)

var ErrNoRows = errors.New("keymap: no rows")

type file struct {
	Name string     `toml:"name"`
	Rows [][]string `toml:"rows"`
}

// Keymap is a parsed layout, row-major from the top-left key.
type Keymap struct {
	Name string
	Rows [][]types.KeyDescriptor
}

// Decode parses a TOML keymap.
func Decode(r io.Reader) (Keymap, error) {
	var f file
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Keymap{}, err
	}
	if len(f.Rows) == 0 {
		return Keymap{}, ErrNoRows
	}
	km := Keymap{Name: f.Name, Rows: make([][]types.KeyDescriptor, 0, len(f.Rows))}
	for i, row := range f.Rows {
		keys, err := keymapx.ParseRow(row)
		if err != nil {
			return Keymap{}, fmt.Errorf("row %d: %w", i, err)
		}
		km.Rows = append(km.Rows, keys)
	}
	return km, nil
}

// Load reads a keymap file.
func Load(path string) (Keymap, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Keymap{}, err
	}
	defer fh.Close()
	return Decode(fh)
}

// Encode writes km in the same format Decode accepts.
func Encode(w io.Writer, km Keymap) error {
	f := file{Name: km.Name, Rows: make([][]string, len(km.Rows))}
	for i, row := range km.Rows {
		for _, d := range row {
			f.Rows[i] = append(f.Rows[i], keymapx.Format(d))
		}
	}
	return toml.NewEncoder(w).Encode(f)
}
