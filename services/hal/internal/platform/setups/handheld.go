//go:build !kbd_matrix && !kbd_tca8418

package setups

import "kbdcore-go/types"

// Selected is the stock handheld: either keyboard may be fitted, so the
// board type is detected at boot.
var Selected = Setup{
	Name: "handheld",
	Plan: ResourcePlan{
		I2C:  []I2CPlan{{ID: "i2c0", SDA: 8, SCL: 9, Hz: 400_000}},
		UART: []UARTPlan{{ID: "uart0", TX: 0, RX: 1, Baud: 115200}},
	},
	Keyboard: types.DefaultKeyboardConfig(),
}
