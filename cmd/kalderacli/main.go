package main

import (
	"encoding/json"
	"fmt"

	"github.com/kaldera3d/kaldera/gpu"
	log "github.com/sirupsen/logrus"
)

// Dumps the physical device inventory as JSON. Runs headless: a default
// loader instance with no surface, no validation, no window.
func main() {
	driver, err := gpu.NewVulkanDriver(nil)
	if err != nil {
		log.Fatal("gpu.NewVulkanDriver(): ", err)
	}

	instance, err := driver.CreateInstance(gpu.InstanceCreateInfo{
		App: gpu.ApplicationInfo{
			Name:       "kalderacli",
			EngineName: "Kaldera3D",
			Version:    gpu.Version{Major: 0, Minor: 1},
			APIVersion: gpu.Version{Major: 1},
		},
	})
	if err != nil {
		log.Fatal("CreateInstance(): ", err)
	}
	defer instance.Destroy()

	infos, err := gpu.PhysicalDevicesInfo(instance)
	if err != nil {
		log.Fatal("PhysicalDevicesInfo(): ", err)
	}

	bytes, err := json.Marshal(infos)
	if err != nil {
		log.Fatal("json.Marshal(): ", err)
	}
	fmt.Printf("%s", bytes)
}
