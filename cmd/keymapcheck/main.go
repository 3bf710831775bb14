// cmd/keymapcheck/main.go
//
// keymapcheck validates a TOML keymap against the handheld's 4x14 grid and
// prints it. With -dump it writes the built-in layout instead.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"kbdcore-go/services/hal/keyboard"
	"kbdcore-go/x/keymapx"
	"kbdcore-go/x/keymapx/keymaptoml"
)

func main() {
	dump := flag.Bool("dump", false, "write the built-in layout as TOML to stdout")
	flag.Parse()

	if *dump {
		km := keymaptoml.Keymap{Name: "us", Rows: keyboard.DefaultLayout().Table()}
		if err := keymaptoml.Encode(os.Stdout, km); err != nil {
			fail(err)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: keymapcheck [-dump] <keymap.toml>")
		os.Exit(2)
	}

	km, err := keymaptoml.Load(flag.Arg(0))
	if err != nil {
		fail(err)
	}
	grid, err := keyboard.NewGridLayout(km.Rows)
	if err != nil {
		fail(fmt.Errorf("%s: %w", km.Name, err))
	}

	fmt.Printf("keymap %q ok\n", km.Name)
	for _, row := range grid.Table() {
		cells := make([]string, len(row))
		for i, d := range row {
			cells[i] = fmt.Sprintf("%-8s", keymapx.Format(d))
		}
		fmt.Println(strings.TrimRight(strings.Join(cells, " "), " "))
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "keymapcheck:", err)
	os.Exit(1)
}
