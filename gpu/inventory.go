package gpu

// PhysicalDevicesInfo collects the static inventory of every device known
// to the instance, extensions included. Intended for tooling and logs, not
// for the selection path, which queries per device as it goes.
func PhysicalDevicesInfo(instance Instance) ([]PhysicalDeviceInfo, error) {
	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, err
	}

	infos := make([]PhysicalDeviceInfo, len(devices))
	for idx, device := range devices {
		infos[idx] = device.Info()
		if extensions, err := device.Extensions(); err == nil {
			infos[idx].Extensions = extensions
		}
	}
	return infos, nil
}
