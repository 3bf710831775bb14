package platform

import (
	"kbdcore-go/services/hal/internal/platform/setups"
	"kbdcore-go/types"
)

// Public accessors used by hal.Run and main.
func GetInitialConfig() types.KeyboardConfig { return setups.Selected.Keyboard }
func GetSelectedPlan() setups.ResourcePlan   { return setups.Selected.Plan }
func GetSetupName() string                   { return setups.Selected.Name }
