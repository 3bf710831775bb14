package boards

// Board describes what the SoC can do (controllers present, GPIO range).
// It must not include wiring choices (pins) or operating parameters (clock rates).
type Board struct {
	Name             string
	GPIOMin, GPIOMax int

	// Controllers present (identities only; e.g. "i2c0", "uart0").
	I2C  []string
	UART []string
}

// ValidPin reports whether n is a user GPIO on this board.
func (b Board) ValidPin(n int) bool { return n >= b.GPIOMin && n <= b.GPIOMax }

// HasI2C reports whether the controller id exists.
func (b Board) HasI2C(id string) bool {
	for _, s := range b.I2C {
		if s == id {
			return true
		}
	}
	return false
}

var (
	Pico = Board{
		Name: "pico", GPIOMin: 0, GPIOMax: 28,
		I2C: []string{"i2c0", "i2c1"}, UART: []string{"uart0", "uart1"},
	}
	Pico2 = Board{
		Name: "pico2", GPIOMin: 0, GPIOMax: 29,
		I2C: []string{"i2c0", "i2c1"}, UART: []string{"uart0", "uart1"},
	}
)
