// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import "fmt"

// BuildLogicalDevice derives a logical device from the selected physical
// device and retrieves the graphics and presentation queue handles at
// slot 0 of their families. Exactly one queue is requested per distinct
// family index; when graphics and present coincide the single underlying
// queue is returned twice.
func BuildLogicalDevice(device PhysicalDevice, indices QueueFamilyIndices, extensions []string) (Device, Queue, Queue, error) {
	if !indices.Complete() {
		return nil, nil, nil, fmt.Errorf("gpu: %w: incomplete queue family indices", ErrDeviceCreationFailed)
	}

	graphics := *indices.Graphics
	present := *indices.Present

	// The two families are often the same; requesting one family twice
	// is itself a driver validation error, so dedup is mandatory.
	families := []uint32{graphics}
	if present != graphics {
		families = append(families, present)
	}

	requests := make([]QueueRequest, len(families))
	for i, family := range families {
		requests[i] = QueueRequest{
			Family:     family,
			Priorities: []float32{1.0},
		}
	}

	logical, err := device.CreateDevice(DeviceCreateInfo{
		Queues:     requests,
		Extensions: extensions,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("gpu: %w: %v", ErrDeviceCreationFailed, err)
	}

	graphicsQueue := logical.Queue(graphics, 0)
	presentQueue := logical.Queue(present, 0)

	return logical, graphicsQueue, presentQueue, nil
}
