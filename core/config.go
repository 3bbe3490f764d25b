package core

import (
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Display  DisplayConfiguration
	Graphics GraphicsConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the interval between event queue polls,
	// in milliseconds
	EventPollDelay int
}

// DisplayConfiguration is used to configure the window
type DisplayConfiguration struct {
	Title        string
	ScreenWidth  uint32
	ScreenHeight uint32
}

// GraphicsConfiguration is used to configure the graphics bootstrap.
// Resolved once at process start; the validating and non-validating
// paths are plain runtime values, not build variants.
type GraphicsConfiguration struct {
	// EnableValidation attaches validation layers and the diagnostics
	// messenger to the session
	EnableValidation bool

	// ValidationLayers must all be present in the driver's layer
	// enumeration when validation is enabled
	ValidationLayers []string

	// DeviceExtensions a device must support to be selected
	DeviceExtensions []string
}

// Environment variables understood by FromEnvironment.
const (
	EnvValidation       = "KALDERA_VALIDATION"
	EnvValidationLayers = "KALDERA_VALIDATION_LAYERS"
	EnvDeviceExtensions = "KALDERA_DEVICE_EXTENSIONS"
	EnvFramesPerSecond  = "KALDERA_FPS"
)

// Names the defaults are built from.
const (
	DefaultValidationLayer = "VK_LAYER_KHRONOS_validation"
	SwapchainExtensionName = "VK_KHR_swapchain"
)

// FromEnvironment resolves configuration from the process environment on
// top of the given defaults. List-valued variables are comma separated.
func FromEnvironment(defaults Configuration) Configuration {
	cfg := defaults

	if v, err := strconv.ParseBool(envy.Get(EnvValidation, "")); err == nil {
		cfg.Graphics.EnableValidation = v
	}
	if v := envy.Get(EnvValidationLayers, ""); v != "" {
		cfg.Graphics.ValidationLayers = splitList(v)
	}
	if v := envy.Get(EnvDeviceExtensions, ""); v != "" {
		cfg.Graphics.DeviceExtensions = splitList(v)
	}
	if v, err := strconv.Atoi(envy.Get(EnvFramesPerSecond, "")); err == nil && v >= 0 {
		cfg.Time.FramesPerSecond = v
	}

	return cfg
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
