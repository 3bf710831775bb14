// services/hal/internal/halerr/errors.go
package halerr

import "errors"

var (
	// Service/control plane
	ErrNotReady       = errors.New("not_ready")
	ErrUnknownControl = errors.New("unknown_control")

	// Build/config
	ErrNoConfig      = errors.New("no_config")
	ErrInvalidConfig = errors.New("invalid_config")
)
