// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gpu bootstraps a session against the native graphics driver:
// instance, optional diagnostics, surface adoption, device selection,
// logical device and queues, and dependency-safe teardown of all of it.
package gpu

// Driver is the entry point to a native graphics driver. Everything the
// bootstrap touches goes through this seam, so the selection and teardown
// logic can be driven by an instrumented implementation in tests while
// production uses the Vulkan driver from vulkan.go.
type Driver interface {
	// SupportedLayers enumerates instance layers known to the driver
	SupportedLayers() ([]string, error)

	// SupportedExtensions enumerates instance extensions known to the driver
	SupportedExtensions() ([]string, error)

	// CreateInstance allocates one native instance
	CreateInstance(info InstanceCreateInfo) (Instance, error)
}

// Instance is the top-level session handle. It owns every other handle
// created through it and must be destroyed last.
type Instance interface {
	// CreateDebugMessenger attaches a live diagnostics object to the
	// instance. The inline configuration passed at instance creation is
	// not retained by the driver, hence the separate call.
	CreateDebugMessenger(cfg DebugConfig) (DebugMessenger, error)

	// PhysicalDevices enumerates devices; the handles are driver-owned
	// and never destroyed by the application
	PhysicalDevices() ([]PhysicalDevice, error)

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy releases the instance
	Destroy()
}

// DebugMessenger is the diagnostics sink handle, present only when
// validation is enabled.
type DebugMessenger interface {
	Destroy()
}

// Surface is a presentable target bound to a platform window. It is owned
// by the instance it was created against.
type Surface interface {
	Inner() interface{}
	Destroy()
}

// PhysicalDevice represents one GPU/driver pairing. Queried and selected,
// never created or destroyed here.
type PhysicalDevice interface {
	// Info reports static device properties for inventory purposes
	Info() PhysicalDeviceInfo

	// QueueFamilies lists the device queue families in driver order
	QueueFamilies() ([]QueueFamily, error)

	// SupportsPresent reports whether the given family can present to
	// the given surface
	SupportsPresent(family uint32, surface Surface) (bool, error)

	// Extensions enumerates device extension names
	Extensions() ([]string, error)

	// SwapchainSupport queries (device, surface) presentation abilities.
	// Computed on demand, never cached.
	SwapchainSupport(surface Surface) (SwapchainSupportDetails, error)

	// CreateDevice derives a logical device
	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// Device is the logical device, source of queues.
type Device interface {
	// Queue retrieves the queue at the given slot of a family that was
	// requested at creation time
	Queue(family, index uint32) Queue

	Inner() interface{}
	Destroy()
}

// Queue is a command submission queue handle.
type Queue interface {
	Inner() interface{}
}

// Version is used to specify versions of components.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ApplicationInfo identifies the application to the driver.
type ApplicationInfo struct {
	Name       string
	EngineName string
	Version    Version
	APIVersion Version
}

// InstanceCreateInfo carries everything the driver needs to allocate an
// instance. Debug, when set, configures instance-creation-time diagnostics;
// the driver does not keep it as a live object.
type InstanceCreateInfo struct {
	App        ApplicationInfo
	Extensions []string
	Layers     []string
	Debug      *DebugConfig
}

// QueueFamily describes the capabilities of one queue family.
type QueueFamily struct {
	Index    uint32
	Graphics bool
	Compute  bool
	Transfer bool
	Count    uint32
}

// QueueRequest asks for queues from one family. One request per distinct
// family; requesting a family twice is a driver validation error.
type QueueRequest struct {
	Family     uint32
	Priorities []float32
}

// DeviceCreateInfo configures logical device derivation.
type DeviceCreateInfo struct {
	Queues     []QueueRequest
	Extensions []string
}

// SurfaceCapabilities is the subset of surface limits downstream swapchain
// construction needs.
type SurfaceCapabilities struct {
	MinImageCount uint32
	MaxImageCount uint32
	CurrentWidth  uint32
	CurrentHeight uint32
}

// SurfaceFormat is a pixel format / colorspace pair supported by a
// (device, surface) combination.
type SurfaceFormat struct {
	Format     uint32
	ColorSpace uint32
}

// PresentMode is a presentation timing mode supported by a
// (device, surface) combination.
type PresentMode int32

// SwapchainSupportDetails holds the result of a presentation support query
// for one (device, surface) pair.
type SwapchainSupportDetails struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// Adequate reports whether the pair can present at all: at least one
// format and one present mode.
func (s SwapchainSupportDetails) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Memory        uint
	Extensions    []string
}
