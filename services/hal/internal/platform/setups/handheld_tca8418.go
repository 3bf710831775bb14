//go:build kbd_tca8418 && !kbd_matrix

package setups

import "kbdcore-go/types"

// Selected forces the TCA8418 keypad controller.
var Selected = Setup{
	Name: "handheld_tca8418",
	Plan: ResourcePlan{
		I2C:  []I2CPlan{{ID: "i2c0", SDA: 8, SCL: 9, Hz: 400_000}},
		UART: []UARTPlan{{ID: "uart0", TX: 0, RX: 1, Baud: 115200}},
	},
	Keyboard: func() types.KeyboardConfig {
		c := types.DefaultKeyboardConfig()
		c.Board = types.BoardController
		return c
	}(),
}
