package main

import (
	"runtime"

	"github.com/joho/godotenv"
	"github.com/kaldera3d/kaldera/core"
	"github.com/kaldera3d/kaldera/gpu"
	"github.com/kaldera3d/kaldera/platform"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

var defaults = core.Configuration{
	Time: core.TimeConfiguration{
		FramesPerSecond: 60,
		EventPollDelay:  5,
	},
	Display: core.DisplayConfiguration{
		Title:        "Kaldera3D",
		ScreenWidth:  800,
		ScreenHeight: 600,
	},
	Graphics: core.GraphicsConfiguration{
		EnableValidation: false,
		ValidationLayers: []string{core.DefaultValidationLayer},
		DeviceExtensions: []string{core.SwapchainExtensionName},
	},
}

func main() {
	godotenv.Load()
	configuration := core.FromEnvironment(defaults)

	if err := platform.Init(); err != nil {
		log.Fatal("platform.Init(): ", err)
	}
	defer platform.Quit()

	window, err := platform.NewWindow(
		configuration.Display.Title,
		configuration.Display.ScreenWidth,
		configuration.Display.ScreenHeight)
	if err != nil {
		log.Fatal("platform.NewWindow(): ", err)
	}
	defer window.Destroy()

	driver, err := gpu.NewVulkanDriver(platform.ProcAddr())
	if err != nil {
		log.Fatal("gpu.NewVulkanDriver(): ", err)
	}

	ctx, err := gpu.Bootstrap(driver, window, gpu.BootstrapConfig{
		App: gpu.ApplicationInfo{
			Name:       configuration.Display.Title,
			EngineName: "Kaldera3D",
			Version:    gpu.Version{Major: 0, Minor: 1},
			APIVersion: gpu.Version{Major: 1},
		},
		EnableValidation: configuration.Graphics.EnableValidation,
		ValidationLayers: configuration.Graphics.ValidationLayers,
		DeviceExtensions: configuration.Graphics.DeviceExtensions,
	})
	if err != nil {
		log.Fatal("gpu.Bootstrap(): ", err)
	}

	log.WithField("device", ctx.PhysicalDevice().Info().Name).Info("ready")

	time := core.NewTime(configuration.Time)
	exitC := make(chan struct{}, 2)

EventLoop:
	for {
		select {
		case <-exitC:
			log.Info("event loop exited")
			break EventLoop
		case <-time.FpsTicker().C:
			var event sdl.Event
			for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						exitC <- struct{}{}
						continue EventLoop
					}
				case *sdl.QuitEvent:
					exitC <- struct{}{}
					continue EventLoop
				}
			}
			// render loop goes here; bootstrap only hands out the handles
		}
	}

	time.Stop()
	ctx.Destroy()
}
