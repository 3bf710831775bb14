//go:build kbd_matrix

package setups

import "kbdcore-go/types"

// Selected forces the GPIO matrix keyboard. No I2C controller is planned.
var Selected = Setup{
	Name: "handheld_matrix",
	Plan: ResourcePlan{
		UART: []UARTPlan{{ID: "uart0", TX: 0, RX: 1, Baud: 115200}},
	},
	Keyboard: func() types.KeyboardConfig {
		c := types.DefaultKeyboardConfig()
		c.Board = types.BoardMatrix
		return c
	}(),
}
