package keyboard

import (
	"errors"

	"kbdcore-go/types"
	"kbdcore-go/x/keymapx"
)

// Logical grid of the handheld keyboard.
const (
	Rows = 4
	Cols = 14
)

var ErrLayoutShape = errors.New("layout must be 4 rows of 14 keys")

// Layout maps a logical coordinate to its key descriptor.
type Layout interface {
	Lookup(p types.Point) (types.KeyDescriptor, bool)
}

// GridLayout is a dense Rows x Cols table indexed [y][x].
type GridLayout [Rows][Cols]types.KeyDescriptor

func (g *GridLayout) Lookup(p types.Point) (types.KeyDescriptor, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= Cols || p.Y >= Rows {
		return types.KeyDescriptor{}, false
	}
	return g[p.Y][p.X], true
}

// NewGridLayout copies rows into a grid. Every row must have Cols keys.
func NewGridLayout(rows [][]types.KeyDescriptor) (*GridLayout, error) {
	if len(rows) != Rows {
		return nil, ErrLayoutShape
	}
	g := new(GridLayout)
	for y, row := range rows {
		if len(row) != Cols {
			return nil, ErrLayoutShape
		}
		copy(g[y][:], row)
	}
	return g, nil
}

var defaultRows = [Rows][]string{
	{"`~", "1!", "2@", "3#", "4$", "5%", "6^", "7&", "8*", "9(", "0)", "-_", "=+", "{del}"},
	{"{tab}", "qQ", "wW", "eE", "rR", "tT", "yY", "uU", "iI", "oO", "pP", "[{", "]}", "\\|"},
	{"{fn}", "{shift}", "aA", "sS", "dD", "fF", "gG", "hH", "jJ", "kK", "lL", ";:", "'\"", "{enter}"},
	{"{ctrl}", "{opt}", "{alt}", "zZ", "xX", "cC", "vV", "bB", "nN", "mM", ",<", ".>", "/?", "{space}"},
}

// DefaultLayout returns the stock US layout printed on the handheld.
func DefaultLayout() *GridLayout {
	rows := make([][]types.KeyDescriptor, Rows)
	for y, keys := range defaultRows {
		row, err := keymapx.ParseRow(keys)
		if err != nil {
			panic("keyboard: default layout: " + err.Error())
		}
		rows[y] = row
	}
	g, err := NewGridLayout(rows)
	if err != nil {
		panic("keyboard: default layout: " + err.Error())
	}
	return g
}

// Table returns the grid as row slices, top row first.
func (g *GridLayout) Table() [][]types.KeyDescriptor {
	out := make([][]types.KeyDescriptor, Rows)
	for y := range g {
		out[y] = append([]types.KeyDescriptor(nil), g[y][:]...)
	}
	return out
}
