// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import "errors"

// Fatal bootstrap errors. Each reflects a static fact about the running
// environment (missing layer, missing GPU, exhausted driver) that cannot
// change mid-process, so none of them is ever retried.
var (
	// ErrUnsupportedLayer - a requested validation layer is missing from
	// the driver's layer enumeration
	ErrUnsupportedLayer = errors.New("unsupported validation layer")

	// ErrNoSuitableDevice - no enumerated physical device passed the
	// suitability checks
	ErrNoSuitableDevice = errors.New("no suitable physical device")

	// ErrDeviceCreationFailed - logical device derivation failed
	ErrDeviceCreationFailed = errors.New("logical device creation failed")

	// ErrSurfaceCreation - the platform could not bind a presentable
	// surface to the window
	ErrSurfaceCreation = errors.New("surface creation failed")
)
