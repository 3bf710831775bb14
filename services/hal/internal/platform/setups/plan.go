package setups

import "kbdcore-go/types"

// ResourcePlan specifies wiring and operating parameters chosen by a setup.
// Platform factories consume this plan to configure controllers.
type ResourcePlan struct {
	I2C  []I2CPlan
	UART []UARTPlan
}

type I2CPlan struct {
	ID  string // e.g. "i2c0"
	SDA int    // GPIO number
	SCL int    // GPIO number
	Hz  uint32 // bus frequency
}

type UARTPlan struct {
	ID   string // e.g. "uart0"
	TX   int    // GPIO number
	RX   int    // GPIO number
	Baud uint32
}

// Setup pairs the wiring plan with the keyboard configuration used at boot.
type Setup struct {
	Name     string
	Plan     ResourcePlan
	Keyboard types.KeyboardConfig
}

// I2CByID returns the plan entry for id.
func (p ResourcePlan) I2CByID(id string) (I2CPlan, bool) {
	for _, b := range p.I2C {
		if b.ID == id {
			return b, true
		}
	}
	return I2CPlan{}, false
}

// Console returns the first UART, used for the log sink.
func (p ResourcePlan) Console() (UARTPlan, bool) {
	if len(p.UART) == 0 {
		return UARTPlan{}, false
	}
	return p.UART[0], true
}
