// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import (
	"errors"
	"testing"
)

func TestCheckLayerSupportExactMatch(t *testing.T) {
	rec := &recorder{}
	driver := &fakeDriver{
		rec:    rec,
		layers: []string{"VK_LAYER_KHRONOS_validation_suffixed", "VK_LAYER_LUNARG_monitor"},
	}

	// matching is by exact name, a superstring does not count
	err := checkLayerSupport(driver, []string{"VK_LAYER_KHRONOS_validation"})
	if !errors.Is(err, ErrUnsupportedLayer) {
		t.Errorf("expected ErrUnsupportedLayer, got %v", err)
	}

	if err := checkLayerSupport(driver, []string{"VK_LAYER_LUNARG_monitor"}); err != nil {
		t.Errorf("supported layer rejected: %v", err)
	}

	if err := checkLayerSupport(driver, nil); err != nil {
		t.Errorf("empty layer set rejected: %v", err)
	}
}

func TestCreateInstanceCarriesPlatformExtensions(t *testing.T) {
	rec := &recorder{}
	driver := &fakeDriver{rec: rec}

	platform := []string{"VK_KHR_surface", "VK_KHR_wayland_surface"}
	if _, err := createInstance(driver, defaultConfig(), platform); err != nil {
		t.Fatal(err)
	}

	got := driver.lastInstanceInfo.Extensions
	for _, want := range platform {
		found := false
		for _, ext := range got {
			if ext == want {
				found = true
			}
		}
		if !found {
			t.Errorf("platform extension %s missing from create request %v", want, got)
		}
	}
}
