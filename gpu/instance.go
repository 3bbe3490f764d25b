// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// BootstrapConfig is resolved once at process start and passed in whole,
// so both the validating and non-validating paths can be exercised without
// rebuilding.
type BootstrapConfig struct {
	App ApplicationInfo

	// EnableValidation turns on validation layers and the diagnostics
	// messenger
	EnableValidation bool

	// ValidationLayers must all be supported by the driver when
	// validation is enabled, by exact name match
	ValidationLayers []string

	// DeviceExtensions a suitable device must support, enabled on the
	// logical device
	DeviceExtensions []string
}

// checkLayerSupport verifies every requested layer appears in the driver's
// supported layer enumeration. This is a session-start precondition; it
// runs before any instance exists and is not retryable.
func checkLayerSupport(driver Driver, required []string) error {
	available, err := driver.SupportedLayers()
	if err != nil {
		return fmt.Errorf("gpu: layer enumeration: %w", err)
	}

	supported := make(map[string]bool, len(available))
	for _, name := range available {
		supported[name] = true
	}
	for _, name := range required {
		if !supported[name] {
			return fmt.Errorf("gpu: %w: %s", ErrUnsupportedLayer, name)
		}
	}
	return nil
}

// createInstance allocates the native instance with the platform's required
// presentation extensions, plus the debug machinery when validation is on.
// The diagnostics configuration rides the create request to capture
// instance-creation-time messages; the live messenger is created separately
// by the caller once the instance exists.
func createInstance(driver Driver, cfg BootstrapConfig, platformExtensions []string) (Instance, error) {
	var layers []string
	extensions := append([]string{}, platformExtensions...)

	var debug *DebugConfig
	if cfg.EnableValidation {
		if err := checkLayerSupport(driver, cfg.ValidationLayers); err != nil {
			return nil, err
		}
		layers = cfg.ValidationLayers
		extensions = append(extensions, DebugExtensionName)
		d := DefaultDebugConfig()
		debug = &d
	}

	instance, err := driver.CreateInstance(InstanceCreateInfo{
		App:        cfg.App,
		Extensions: extensions,
		Layers:     layers,
		Debug:      debug,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: instance creation: %w", err)
	}

	log.WithFields(log.Fields{
		"extensions": extensions,
		"validation": cfg.EnableValidation,
	}).Info("instance created")
	return instance, nil
}
