// services/hal/internal/consts/consts.go
package consts

// Topic tokens
const (
	TokConfig   = "config"
	TokHAL      = "hal"
	TokKeyboard = "keyboard"
	TokState    = "state"
	TokControl  = "control"
)

// Control verbs on hal/keyboard/control/<verb>
const (
	CtrlReadNow     = "read_now"
	CtrlCapsLock    = "caps_lock"
	CtrlDimmed      = "dimmed"
	CtrlResetIdle   = "reset_idle"
	CtrlReconfigure = "reconfigure"
)

// hal/state levels
const (
	LevelIdle     = "idle"
	LevelReady    = "ready"
	LevelDegraded = "degraded"
	LevelStopped  = "stopped"
)

// Scan period bounds in milliseconds.
const (
	MinScanPeriodMs = 1
	MaxScanPeriodMs = 1000
)
