package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

// The handheld ships with either keyboard fitted; auto probes the controller
// first and falls back to the GPIO matrix.
const cfgHandheld = `{
  "keyboard": {
    "board": "auto",
    "i2c_bus": "i2c0",
    "address": 52,
    "irq_pin": 11,
    "out_pins": [8, 9, 11],
    "in_pins": [13, 15, 3, 4, 5, 6, 7],
    "scan_period_ms": 10,
    "wait_poll_ms": 10
  },
  "idle": {
    "dim_after_s": 30
  }
}`

// Builds with the keyboard fixed at compile time skip the probe.
const cfgHandheldMatrix = `{
  "keyboard": {
    "board": "gpio_matrix",
    "out_pins": [8, 9, 11],
    "in_pins": [13, 15, 3, 4, 5, 6, 7]
  }
}`

const cfgHandheldTCA8418 = `{
  "keyboard": {
    "board": "tca8418",
    "i2c_bus": "i2c0",
    "address": 52,
    "irq_pin": 11
  }
}`

var embeddedConfigs = map[string][]byte{
	"handheld":         []byte(cfgHandheld),
	"handheld_matrix":  []byte(cfgHandheldMatrix),
	"handheld_tca8418": []byte(cfgHandheldTCA8418),
}
