package types

import "errors"

// KeyboardConfig is supplied on topic "config/keyboard".
type KeyboardConfig struct {
	Board        BoardType `json:"board"`
	I2CBus       string    `json:"i2c_bus,omitempty"`
	Address      uint16    `json:"address,omitempty"`
	IRQPin       int       `json:"irq_pin"`
	OutPins      []int     `json:"out_pins,omitempty"` // 3 decoder select lines, LSB first
	InPins       []int     `json:"in_pins,omitempty"`  // 7 sense lines, bit 0 first
	ScanPeriodMs int       `json:"scan_period_ms,omitempty"`
	WaitPollMs   int       `json:"wait_poll_ms,omitempty"`
}

var (
	ErrMatrixPins = errors.New("matrix needs 3 output and 7 input pins")
	ErrIRQPin     = errors.New("irq_pin must be set for the keypad controller")
)

// DefaultKeyboardConfig returns the stock wiring of the handheld.
func DefaultKeyboardConfig() KeyboardConfig {
	return KeyboardConfig{
		Board:        BoardAuto,
		I2CBus:       "i2c0",
		Address:      0x34,
		IRQPin:       11,
		OutPins:      []int{8, 9, 11},
		InPins:       []int{13, 15, 3, 4, 5, 6, 7},
		ScanPeriodMs: 10,
		WaitPollMs:   10,
	}
}

// Validate checks the fields the selected board needs.
func (c KeyboardConfig) Validate() error {
	if c.Board == BoardAuto || c.Board == BoardMatrix {
		if len(c.OutPins) != 3 || len(c.InPins) != 7 {
			return ErrMatrixPins
		}
	}
	if (c.Board == BoardAuto || c.Board == BoardController) && c.IRQPin <= 0 {
		return ErrIRQPin
	}
	if c.Board > BoardController {
		return ErrUnknownBoard
	}
	return nil
}

// WithDefaults fills zero fields from DefaultKeyboardConfig.
func (c KeyboardConfig) WithDefaults() KeyboardConfig {
	d := DefaultKeyboardConfig()
	if c.I2CBus == "" {
		c.I2CBus = d.I2CBus
	}
	if c.Address == 0 {
		c.Address = d.Address
	}
	if c.IRQPin == 0 {
		c.IRQPin = d.IRQPin
	}
	if len(c.OutPins) == 0 {
		c.OutPins = d.OutPins
	}
	if len(c.InPins) == 0 {
		c.InPins = d.InPins
	}
	if c.ScanPeriodMs <= 0 {
		c.ScanPeriodMs = d.ScanPeriodMs
	}
	if c.WaitPollMs <= 0 {
		c.WaitPollMs = d.WaitPollMs
	}
	return c
}
