// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// QueueFamilyIndices resolves which queue families carry the graphics and
// presentation capabilities. The two indices may coincide.
type QueueFamilyIndices struct {
	Graphics *uint32
	Present  *uint32
}

// Complete reports whether both capabilities were resolved.
func (q QueueFamilyIndices) Complete() bool {
	return q.Graphics != nil && q.Present != nil
}

// FindQueueFamilies scans the device queue families once, recording the
// first family exposing graphics and, independently, the first family able
// to present to surface. The scan stops as soon as both are found.
func FindQueueFamilies(device PhysicalDevice, surface Surface) (QueueFamilyIndices, error) {
	var indices QueueFamilyIndices

	families, err := device.QueueFamilies()
	if err != nil {
		return indices, fmt.Errorf("gpu: queue family enumeration: %w", err)
	}

	for _, family := range families {
		if indices.Graphics == nil && family.Graphics {
			index := family.Index
			indices.Graphics = &index
		}

		if indices.Present == nil {
			supported, err := device.SupportsPresent(family.Index, surface)
			if err != nil {
				return indices, fmt.Errorf("gpu: present support query: %w", err)
			}
			if supported {
				index := family.Index
				indices.Present = &index
			}
		}

		if indices.Complete() {
			break
		}
	}

	return indices, nil
}

// deviceSupportsExtensions checks that every required extension name appears,
// by exact match, among the device's enumerated extensions.
func deviceSupportsExtensions(device PhysicalDevice, required []string) (bool, error) {
	available, err := device.Extensions()
	if err != nil {
		return false, fmt.Errorf("gpu: device extension enumeration: %w", err)
	}

	present := make(map[string]bool, len(available))
	for _, name := range available {
		present[name] = true
	}
	for _, name := range required {
		if !present[name] {
			return false, nil
		}
	}
	return true, nil
}

// deviceIsSuitable applies the three suitability checks in order, cheapest
// first: queue family completeness, extension support, swapchain adequacy.
func deviceIsSuitable(device PhysicalDevice, surface Surface, requiredExtensions []string) (bool, QueueFamilyIndices, error) {
	indices, err := FindQueueFamilies(device, surface)
	if err != nil {
		return false, indices, err
	}
	if !indices.Complete() {
		return false, indices, nil
	}

	ok, err := deviceSupportsExtensions(device, requiredExtensions)
	if err != nil || !ok {
		return false, indices, err
	}

	support, err := device.SwapchainSupport(surface)
	if err != nil {
		return false, indices, fmt.Errorf("gpu: swapchain support query: %w", err)
	}
	return support.Adequate(), indices, nil
}

// SelectPhysicalDevice returns the first enumerated device passing all
// suitability checks, along with its resolved queue family indices.
// First match wins; there is no scoring. A failure here reflects a fixed
// hardware or driver fact and is never retried in-process.
func SelectPhysicalDevice(instance Instance, surface Surface, requiredExtensions []string) (PhysicalDevice, QueueFamilyIndices, error) {
	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, QueueFamilyIndices{}, fmt.Errorf("gpu: physical device enumeration: %w", err)
	}
	if len(devices) == 0 {
		return nil, QueueFamilyIndices{}, fmt.Errorf("gpu: %w: no devices present", ErrNoSuitableDevice)
	}

	for _, device := range devices {
		suitable, indices, err := deviceIsSuitable(device, surface, requiredExtensions)
		if err != nil {
			return nil, QueueFamilyIndices{}, err
		}
		if suitable {
			log.WithField("device", device.Info().Name).Info("selected physical device")
			return device, indices, nil
		}
	}

	return nil, QueueFamilyIndices{}, fmt.Errorf("gpu: %w: %d device(s) enumerated", ErrNoSuitableDevice, len(devices))
}
