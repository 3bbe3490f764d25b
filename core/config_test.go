package core

import (
	"reflect"
	"testing"

	"github.com/gobuffalo/envy"
)

func baseConfiguration() Configuration {
	return Configuration{
		Time: TimeConfiguration{FramesPerSecond: 60, EventPollDelay: 5},
		Graphics: GraphicsConfiguration{
			EnableValidation: false,
			ValidationLayers: []string{DefaultValidationLayer},
			DeviceExtensions: []string{SwapchainExtensionName},
		},
	}
}

func TestFromEnvironmentDefaults(t *testing.T) {
	envy.Temp(func() {
		cfg := FromEnvironment(baseConfiguration())
		if !reflect.DeepEqual(cfg, baseConfiguration()) {
			t.Errorf("empty environment must keep defaults, got %+v", cfg)
		}
	})
}

func TestFromEnvironmentOverrides(t *testing.T) {
	envy.Temp(func() {
		envy.Set(EnvValidation, "true")
		envy.Set(EnvValidationLayers, "VK_LAYER_KHRONOS_validation, VK_LAYER_LUNARG_monitor")
		envy.Set(EnvDeviceExtensions, "VK_KHR_swapchain,VK_KHR_maintenance1")
		envy.Set(EnvFramesPerSecond, "120")

		cfg := FromEnvironment(baseConfiguration())

		if !cfg.Graphics.EnableValidation {
			t.Error("expected validation enabled")
		}
		wantLayers := []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_LUNARG_monitor"}
		if !reflect.DeepEqual(cfg.Graphics.ValidationLayers, wantLayers) {
			t.Errorf("layers %v, want %v", cfg.Graphics.ValidationLayers, wantLayers)
		}
		wantExtensions := []string{"VK_KHR_swapchain", "VK_KHR_maintenance1"}
		if !reflect.DeepEqual(cfg.Graphics.DeviceExtensions, wantExtensions) {
			t.Errorf("extensions %v, want %v", cfg.Graphics.DeviceExtensions, wantExtensions)
		}
		if cfg.Time.FramesPerSecond != 120 {
			t.Errorf("fps %d, want 120", cfg.Time.FramesPerSecond)
		}
	})
}

func TestFromEnvironmentIgnoresGarbage(t *testing.T) {
	envy.Temp(func() {
		envy.Set(EnvValidation, "sometimes")
		envy.Set(EnvFramesPerSecond, "many")

		cfg := FromEnvironment(baseConfiguration())
		if cfg.Graphics.EnableValidation {
			t.Error("unparseable toggle must keep the default")
		}
		if cfg.Time.FramesPerSecond != 60 {
			t.Errorf("unparseable fps must keep the default, got %d", cfg.Time.FramesPerSecond)
		}
	})
}
