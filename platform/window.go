// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package platform owns the windowing side of the engine: SDL initialisation,
// the window itself, and the surface it hands to the gpu package. The gpu
// package never talks to SDL directly.
package platform

import (
	"unsafe"

	"github.com/kaldera3d/kaldera/gpu"
	"github.com/veandco/go-sdl2/sdl"
)

// Init brings up SDL video and events and loads the Vulkan library.
// Call Quit when done.
func Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return err
	}
	return nil
}

// Quit unloads the Vulkan library and shuts SDL down.
func Quit() {
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}

// ProcAddr returns the vkGetInstanceProcAddr pointer from the loaded
// Vulkan library, for handing to the gpu driver.
func ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// NewWindow creates a Vulkan-capable window.
func NewWindow(title string, width, height uint32) (*Window, error) {
	win, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(width),
		int32(height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, err
	}
	return &Window{window: win}, nil
}

// Window wraps an SDL window and acts as the surface source for bootstrap.
type Window struct {
	window *sdl.Window
}

// RequiredExtensions returns the instance extensions the platform needs
// to present to this window.
func (w *Window) RequiredExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// CreateSurface binds a presentable surface to the given instance.
// The surface is owned by the instance; the window only produces it.
func (w *Window) CreateSurface(instance gpu.Instance) (gpu.Surface, error) {
	pSurface, err := w.window.VulkanCreateSurface(instance.Inner())
	if err != nil {
		return nil, err
	}
	return gpu.ImportSurface(instance, pSurface)
}

// Destroy releases the window. The surface made from it must already have
// been destroyed with its owning instance.
func (w *Window) Destroy() {
	w.window.Destroy()
}
