package gpu

import (
	"errors"
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DebugExtensionName is the instance extension backing the diagnostics
// channel. It must be enabled at instance creation for a messenger to be
// creatable afterwards.
const DebugExtensionName = "VK_EXT_debug_report"

// NewVulkanDriver initializes the Vulkan loader and returns the production
// driver. procAddr is the vkGetInstanceProcAddr pointer handed out by the
// windowing layer; passing nil falls back to the default loader, which is
// enough for headless (surface-less) use.
func NewVulkanDriver(procAddr unsafe.Pointer) (Driver, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}
	return &vulkanDriver{}, nil
}

type vulkanDriver struct{}

func (d *vulkanDriver) SupportedLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceLayerProperties(): " + err.Error())
	}
	layers := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, layers)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceLayerProperties(): " + err.Error())
	}

	names := make([]string, 0, count)
	for _, layer := range layers {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

func (d *vulkanDriver) SupportedExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceExtensionProperties(): " + err.Error())
	}
	extensions := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, extensions)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceExtensionProperties(): " + err.Error())
	}

	names := make([]string, 0, count)
	for _, ext := range extensions {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

func (d *vulkanDriver) CreateInstance(info InstanceCreateInfo) (Instance, error) {
	apiVersion := info.App.APIVersion
	if apiVersion.Major < 1 {
		apiVersion.Major = 1
	}

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(apiVersion.Major, apiVersion.Minor, apiVersion.Patch),
		ApplicationVersion: vk.MakeVersion(info.App.Version.Major, info.App.Version.Minor, info.App.Version.Patch),
		PApplicationName:   safeString(info.App.Name),
		PEngineName:        safeString(info.App.EngineName),
	}

	extensions := safeStrings(info.Extensions)
	layers := safeStrings(info.Layers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	vk.InitInstance(instance)

	// The binding exposes VK_EXT_debug_report, which has no equivalent of
	// chaining a messenger config onto the create request. Creation-time
	// diagnostics therefore begin with the messenger the caller attaches
	// right after this returns; info.Debug is kept so that messenger
	// inherits the configuration requested here.
	return &vulkanInstance{instance: instance, debug: info.Debug}, nil
}

type vulkanInstance struct {
	instance vk.Instance
	debug    *DebugConfig
}

func (i *vulkanInstance) CreateDebugMessenger(cfg DebugConfig) (DebugMessenger, error) {
	if i.debug != nil {
		cfg = *i.debug
	}

	sink := cfg.Callback
	callback := func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
		object uint64, location uint, messageCode int32, layerPrefix string,
		message string, userData unsafe.Pointer) vk.Bool32 {
		if sink != nil {
			severity, messageType := mapDebugReportFlags(flags)
			sink(severity, messageType, fmt.Sprintf("[%s] Code %d : %s", layerPrefix, messageCode, message))
		}
		// False: log and continue, never abort the offending call
		return vk.Bool32(vk.False)
	}

	var handle vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(i.instance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       debugReportFlags(cfg.Severities, cfg.Types),
		PfnCallback: callback,
	}, nil, &handle)
	if err := vk.Error(ret); err != nil {
		return nil, errors.New("vk.CreateDebugReportCallback(): " + err.Error())
	}

	return &vulkanMessenger{instance: i.instance, handle: handle}, nil
}

func (i *vulkanInstance) PhysicalDevices() ([]PhysicalDevice, error) {
	var count uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.instance, &count, nil)); err != nil {
		return nil, errors.New("vk.EnumeratePhysicalDevices(): " + err.Error())
	}
	devices := make([]vk.PhysicalDevice, count)
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.instance, &count, devices)); err != nil {
		return nil, errors.New("vk.EnumeratePhysicalDevices(): " + err.Error())
	}

	ret := make([]PhysicalDevice, count)
	for idx, device := range devices {
		ret[idx] = &vulkanPhysicalDevice{device: device, info: readDeviceInfo(device)}
	}
	return ret, nil
}

func (i *vulkanInstance) Inner() interface{} {
	return i.instance
}

func (i *vulkanInstance) Destroy() {
	vk.DestroyInstance(i.instance, nil)
}

// ImportSurface wraps a surface pointer produced by the windowing layer
// (e.g. SDL) into a handle owned by the given instance. Only instances
// produced by the Vulkan driver can adopt foreign surfaces.
func ImportSurface(instance Instance, pSurface unsafe.Pointer) (Surface, error) {
	in, ok := instance.(*vulkanInstance)
	if !ok {
		return nil, errors.New("gpu: instance was not created by the Vulkan driver")
	}
	return &vulkanSurface{
		instance: in.instance,
		surface:  vk.SurfaceFromPointer(uintptr(pSurface)),
	}, nil
}

type vulkanMessenger struct {
	instance vk.Instance
	handle   vk.DebugReportCallback
}

func (m *vulkanMessenger) Destroy() {
	vk.DestroyDebugReportCallback(m.instance, m.handle, nil)
}

type vulkanSurface struct {
	instance vk.Instance
	surface  vk.Surface
}

func (s *vulkanSurface) Inner() interface{} {
	return s.surface
}

func (s *vulkanSurface) Destroy() {
	vk.DestroySurface(s.instance, s.surface, nil)
}

type vulkanPhysicalDevice struct {
	device vk.PhysicalDevice
	info   PhysicalDeviceInfo
}

func readDeviceInfo(device vk.PhysicalDevice) PhysicalDeviceInfo {
	var info PhysicalDeviceInfo

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(device, &properties)
	properties.Deref()
	info.ID = (int)(properties.DeviceID)
	info.VendorID = (int)(properties.VendorID)
	info.Name = vk.ToString(properties.DeviceName[:])
	info.DriverVersion = (int)(properties.DriverVersion)

	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(device, &memoryProperties)
	memoryProperties.Deref()
	for iMem := (uint32)(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		info.Memory = info.Memory + uint(memoryProperties.MemoryHeaps[iMem].Size)
	}

	return info
}

func (p *vulkanPhysicalDevice) Info() PhysicalDeviceInfo {
	return p.info
}

func (p *vulkanPhysicalDevice) QueueFamilies() ([]QueueFamily, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(p.device, &count, nil)
	properties := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.device, &count, properties)

	families := make([]QueueFamily, count)
	for idx := range properties {
		properties[idx].Deref()
		flags := properties[idx].QueueFlags
		families[idx] = QueueFamily{
			Index:    uint32(idx),
			Graphics: flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0,
			Compute:  flags&vk.QueueFlags(vk.QueueComputeBit) != 0,
			Transfer: flags&vk.QueueFlags(vk.QueueTransferBit) != 0,
			Count:    properties[idx].QueueCount,
		}
	}
	return families, nil
}

func (p *vulkanPhysicalDevice) SupportsPresent(family uint32, surface Surface) (bool, error) {
	s, ok := surface.(*vulkanSurface)
	if !ok {
		return false, errors.New("gpu: surface was not created by the Vulkan driver")
	}

	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(p.device, family, s.surface, &supported)); err != nil {
		return false, errors.New("vk.GetPhysicalDeviceSurfaceSupport(): " + err.Error())
	}
	return supported.B(), nil
}

func (p *vulkanPhysicalDevice) Extensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.device, "", &count, nil)); err != nil {
		return nil, errors.New("vk.EnumerateDeviceExtensionProperties(): " + err.Error())
	}
	extensions := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.device, "", &count, extensions)); err != nil {
		return nil, errors.New("vk.EnumerateDeviceExtensionProperties(): " + err.Error())
	}

	names := make([]string, 0, count)
	for _, ext := range extensions {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

func (p *vulkanPhysicalDevice) SwapchainSupport(surface Surface) (SwapchainSupportDetails, error) {
	var details SwapchainSupportDetails

	s, ok := surface.(*vulkanSurface)
	if !ok {
		return details, errors.New("gpu: surface was not created by the Vulkan driver")
	}

	var capabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(p.device, s.surface, &capabilities)); err != nil {
		return details, errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	capabilities.Deref()
	capabilities.CurrentExtent.Deref()
	details.Capabilities = SurfaceCapabilities{
		MinImageCount: capabilities.MinImageCount,
		MaxImageCount: capabilities.MaxImageCount,
		CurrentWidth:  capabilities.CurrentExtent.Width,
		CurrentHeight: capabilities.CurrentExtent.Height,
	}

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.device, s.surface, &formatCount, nil)); err != nil {
		return details, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.device, s.surface, &formatCount, formats)); err != nil {
		return details, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	for _, format := range formats {
		format.Deref()
		details.Formats = append(details.Formats, SurfaceFormat{
			Format:     uint32(format.Format),
			ColorSpace: uint32(format.ColorSpace),
		})
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.device, s.surface, &modeCount, nil)); err != nil {
		return details, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	modes := make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.device, s.surface, &modeCount, modes)); err != nil {
		return details, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	for _, mode := range modes {
		details.PresentModes = append(details.PresentModes, PresentMode(mode))
	}

	return details, nil
}

func (p *vulkanPhysicalDevice) CreateDevice(info DeviceCreateInfo) (Device, error) {
	queueInfos := make([]vk.DeviceQueueCreateInfo, len(info.Queues))
	for idx, request := range info.Queues {
		queueInfos[idx] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: request.Family,
			QueueCount:       uint32(len(request.Priorities)),
			PQueuePriorities: request.Priorities,
		}
	}

	extensions := safeStrings(info.Extensions)
	createInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(p.device, &createInfo, nil, &device)); err != nil {
		return nil, errors.New("vk.CreateDevice(): " + err.Error())
	}
	return &vulkanDevice{device: device}, nil
}

type vulkanDevice struct {
	device vk.Device
}

func (d *vulkanDevice) Queue(family, index uint32) Queue {
	var queue vk.Queue
	vk.GetDeviceQueue(d.device, family, index, &queue)
	return &vulkanQueue{queue: queue}
}

func (d *vulkanDevice) Inner() interface{} {
	return d.device
}

func (d *vulkanDevice) Destroy() {
	vk.DestroyDevice(d.device, nil)
}

type vulkanQueue struct {
	queue vk.Queue
}

func (q *vulkanQueue) Inner() interface{} {
	return q.queue
}

func debugReportFlags(severities Severity, types MessageType) vk.DebugReportFlags {
	var flags vk.DebugReportFlagBits
	if severities&SeverityVerbose != 0 {
		flags |= vk.DebugReportDebugBit
	}
	if severities&SeverityInfo != 0 {
		flags |= vk.DebugReportInformationBit
	}
	if severities&SeverityWarning != 0 {
		flags |= vk.DebugReportWarningBit
	}
	if severities&SeverityError != 0 {
		flags |= vk.DebugReportErrorBit
	}
	if types&MessagePerformance != 0 && severities&SeverityWarning != 0 {
		flags |= vk.DebugReportPerformanceWarningBit
	}
	return vk.DebugReportFlags(flags)
}

func mapDebugReportFlags(flags vk.DebugReportFlags) (Severity, MessageType) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return SeverityError, MessageValidation
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return SeverityWarning, MessagePerformance
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return SeverityWarning, MessageValidation
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		return SeverityInfo, MessageGeneral
	}
	return SeverityVerbose, MessageGeneral
}
