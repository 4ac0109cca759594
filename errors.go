package gpiomem

import "errors"

// Failure classes callers can observe. The probe-time ones (ErrNoResource
// here, ErrRegionCount and ErrBadRegion in the regions package) abort
// initialization and no device is handed out; the per-call ones leave all
// device state untouched.
var (
	// ErrNoResource means a declared register window had no resolvable io
	// resource.
	ErrNoResource = errors.New("gpiomem: no io resource for register area")

	// ErrUnknownMinor means open or release used a minor number this
	// device does not own.
	ErrUnknownMinor = errors.New("gpiomem: unknown minor device")

	// ErrAccessDenied means the requested range is not fully inside any
	// register window. The same range is denied every time.
	ErrAccessDenied = errors.New("gpiomem: request outside register windows")

	// ErrMapFailed means the mapping primitive could not install the
	// pages. The condition is transient and the caller may retry.
	ErrMapFailed = errors.New("gpiomem: mapping pages failed")
)
