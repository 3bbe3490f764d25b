// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import "errors"

// A recording driver stands in for the native one so the tests can assert
// exact call sequences, destruction order above all.

type recorder struct {
	calls []string
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

type fakeDriver struct {
	rec        *recorder
	layers     []string
	extensions []string
	devices    []PhysicalDevice

	failCreateInstance bool
	failMessenger      bool
	lastInstanceInfo   *InstanceCreateInfo
}

func (d *fakeDriver) SupportedLayers() ([]string, error) {
	return d.layers, nil
}

func (d *fakeDriver) SupportedExtensions() ([]string, error) {
	return d.extensions, nil
}

func (d *fakeDriver) CreateInstance(info InstanceCreateInfo) (Instance, error) {
	if d.failCreateInstance {
		return nil, errors.New("fake: instance exhausted")
	}
	d.rec.record("CreateInstance")
	d.lastInstanceInfo = &info
	return &fakeInstance{rec: d.rec, devices: d.devices, failMessenger: d.failMessenger}, nil
}

type fakeInstance struct {
	rec     *recorder
	devices []PhysicalDevice

	failMessenger bool
	messengers    int
}

func (i *fakeInstance) CreateDebugMessenger(cfg DebugConfig) (DebugMessenger, error) {
	if i.failMessenger {
		return nil, errors.New("fake: no messenger")
	}
	i.rec.record("CreateDebugMessenger")
	i.messengers++
	return &fakeMessenger{rec: i.rec}, nil
}

func (i *fakeInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	return i.devices, nil
}

func (i *fakeInstance) Inner() interface{} { return i }

func (i *fakeInstance) Destroy() {
	i.rec.record("DestroyInstance")
}

type fakeMessenger struct {
	rec *recorder
}

func (m *fakeMessenger) Destroy() {
	m.rec.record("DestroyMessenger")
}

type fakeSurface struct {
	rec *recorder
}

func (s *fakeSurface) Inner() interface{} { return s }

func (s *fakeSurface) Destroy() {
	s.rec.record("DestroySurface")
}

// fakeSource implements SurfaceSource the way the platform package does.
type fakeSource struct {
	rec        *recorder
	extensions []string
	fail       bool
}

func (s *fakeSource) RequiredExtensions() []string {
	return s.extensions
}

func (s *fakeSource) CreateSurface(instance Instance) (Surface, error) {
	if s.fail {
		return nil, errors.New("fake: window gone")
	}
	s.rec.record("CreateSurface")
	return &fakeSurface{rec: s.rec}, nil
}

type fakePhysicalDevice struct {
	rec  *recorder
	name string

	families        []QueueFamily
	presentFamilies map[uint32]bool
	extensions      []string
	support         SwapchainSupportDetails

	failCreateDevice bool
	lastDeviceInfo   *DeviceCreateInfo
}

func (p *fakePhysicalDevice) Info() PhysicalDeviceInfo {
	return PhysicalDeviceInfo{Name: p.name}
}

func (p *fakePhysicalDevice) QueueFamilies() ([]QueueFamily, error) {
	return p.families, nil
}

func (p *fakePhysicalDevice) SupportsPresent(family uint32, surface Surface) (bool, error) {
	return p.presentFamilies[family], nil
}

func (p *fakePhysicalDevice) Extensions() ([]string, error) {
	return p.extensions, nil
}

func (p *fakePhysicalDevice) SwapchainSupport(surface Surface) (SwapchainSupportDetails, error) {
	return p.support, nil
}

func (p *fakePhysicalDevice) CreateDevice(info DeviceCreateInfo) (Device, error) {
	if p.failCreateDevice {
		return nil, errors.New("fake: device exhausted")
	}
	p.rec.record("CreateDevice")
	p.lastDeviceInfo = &info
	return &fakeDevice{rec: p.rec, queues: map[[2]uint32]*fakeQueue{}}, nil
}

type fakeDevice struct {
	rec    *recorder
	queues map[[2]uint32]*fakeQueue
}

// Queue hands out one stable handle per (family, slot), so tests can check
// that shared indices resolve to the same underlying queue.
func (d *fakeDevice) Queue(family, index uint32) Queue {
	key := [2]uint32{family, index}
	if q, ok := d.queues[key]; ok {
		return q
	}
	q := &fakeQueue{family: family, index: index}
	d.queues[key] = q
	return q
}

func (d *fakeDevice) Inner() interface{} { return d }

func (d *fakeDevice) Destroy() {
	d.rec.record("DestroyDevice")
}

type fakeQueue struct {
	family uint32
	index  uint32
}

func (q *fakeQueue) Inner() interface{} { return q }

// suitableDevice builds a device passing all three checks: graphics and
// present on family 0, the swapchain extension, one format and one mode.
func suitableDevice(rec *recorder, name string) *fakePhysicalDevice {
	return &fakePhysicalDevice{
		rec:  rec,
		name: name,
		families: []QueueFamily{
			{Index: 0, Graphics: true, Count: 1},
		},
		presentFamilies: map[uint32]bool{0: true},
		extensions:      []string{"VK_KHR_swapchain"},
		support: SwapchainSupportDetails{
			Formats:      []SurfaceFormat{{Format: 44, ColorSpace: 0}},
			PresentModes: []PresentMode{2},
		},
	}
}

func defaultConfig() BootstrapConfig {
	return BootstrapConfig{
		App: ApplicationInfo{
			Name:       "test",
			EngineName: "test",
			Version:    Version{Major: 0, Minor: 1},
			APIVersion: Version{Major: 1},
		},
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
		DeviceExtensions: []string{"VK_KHR_swapchain"},
	}
}
