package probe

import "errors"

// Sentinel error kinds for probe runs.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("response mismatch")
)
