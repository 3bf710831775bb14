// services/hal/hal.go
package hal

import (
	"context"

	"kbdcore-go/bus"
	"kbdcore-go/services/hal/internal/core"
	"kbdcore-go/services/hal/internal/platform"
	"kbdcore-go/types"
)

// Resources is re-exported so callers outside services/hal can inject fakes.
type Resources = core.Resources

// Topics published and served by the HAL.
var (
	TopicKeyboardState = core.TopicKeyboardState
	TopicControl       = core.TopicControl
)

// -----------------------------------------------------------------------------
// Entry point
// -----------------------------------------------------------------------------

// Run starts the keyboard HAL on the platform's default buses and pins. The
// build-selected setup is applied at start; a config/keyboard message
// replaces it.
func Run(ctx context.Context, conn *bus.Connection) {
	initial := platform.GetInitialConfig()
	RunWith(ctx, conn, Resources{
		I2C:     platform.DefaultI2CFactory(),
		Pins:    platform.DefaultPinFactory(),
		Initial: &initial,
	})
}

// RunWith runs the HAL on explicit resources until ctx is cancelled.
func RunWith(ctx context.Context, conn *bus.Connection, res Resources) {
	core.NewHAL(conn, res).Run(ctx)
}

// DefaultConfig returns the keyboard configuration selected at build time.
func DefaultConfig() types.KeyboardConfig { return platform.GetInitialConfig() }

// SetupName names the build-selected wiring.
func SetupName() string { return platform.GetSetupName() }

// Console returns the UART pins the selected setup reserves for logging.
func Console() (tx, rx int, baud uint32, ok bool) {
	u, ok := platform.GetSelectedPlan().Console()
	return u.TX, u.RX, u.Baud, ok
}
