// Copyright (c) 2026 kaldera3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gpu

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// State tracks bootstrap progress. Construction is single-shot: no state is
// skippable or re-enterable, and StateDestroyed is terminal.
type State int

// Bootstrap states, in order.
const (
	StateUninitialized State = iota
	StateInstanceCreated
	StateSurfaceAttached
	StatePhysicalDeviceSelected
	StateLogicalDeviceReady
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInstanceCreated:
		return "InstanceCreated"
	case StateSurfaceAttached:
		return "SurfaceAttached"
	case StatePhysicalDeviceSelected:
		return "PhysicalDeviceSelected"
	case StateLogicalDeviceReady:
		return "LogicalDeviceReady"
	case StateDestroyed:
		return "Destroyed"
	}
	return "Unknown"
}

// SurfaceSource supplies the platform side of presentation: the instance
// extensions the platform needs, and a surface bound to a live window.
// The windowing layer implements this; see the platform package.
type SurfaceSource interface {
	// RequiredExtensions returns the instance extensions the platform
	// needs for presentation
	RequiredExtensions() []string

	// CreateSurface binds a presentable surface to the instance
	CreateSurface(instance Instance) (Surface, error)
}

// Context owns every handle acquired during bootstrap for its entire
// lifetime. Downstream code (the render loop, swapchain construction)
// borrows the accessors; ownership never transfers.
type Context struct {
	driver Driver
	state  State

	instance  Instance
	messenger DebugMessenger
	surface   Surface

	physicalDevice PhysicalDevice
	indices        QueueFamilyIndices

	device        Device
	graphicsQueue Queue
	presentQueue  Queue
}

// Bootstrap runs the whole acquisition pipeline: instance (with optional
// diagnostics), surface, physical device selection, logical device and
// queues. Every stage blocks on a native driver call; the sequence is
// strictly single threaded. On any failure the handles acquired so far are
// released in reverse order before the error is returned.
func Bootstrap(driver Driver, source SurfaceSource, cfg BootstrapConfig) (*Context, error) {
	ctx := &Context{driver: driver, state: StateUninitialized}

	// Release whatever was acquired before the failing stage, then
	// surface the fatal error. Nothing escapes a failed bootstrap.
	fail := func(err error) (*Context, error) {
		ctx.release()
		return nil, err
	}

	var err error
	ctx.instance, err = createInstance(driver, cfg, source.RequiredExtensions())
	if err != nil {
		return fail(err)
	}
	ctx.state = StateInstanceCreated

	if cfg.EnableValidation {
		// The inline configuration on the create request is not retained
		// by the driver as a live object, so a messenger is created here.
		ctx.messenger, err = ctx.instance.CreateDebugMessenger(DefaultDebugConfig())
		if err != nil {
			return fail(fmt.Errorf("gpu: debug messenger creation: %w", err))
		}
	}

	// The surface must exist before any suitability check runs;
	// presentation support is surface-relative.
	ctx.surface, err = source.CreateSurface(ctx.instance)
	if err != nil {
		return fail(fmt.Errorf("gpu: %w: %v", ErrSurfaceCreation, err))
	}
	ctx.state = StateSurfaceAttached

	ctx.physicalDevice, ctx.indices, err = SelectPhysicalDevice(ctx.instance, ctx.surface, cfg.DeviceExtensions)
	if err != nil {
		return fail(err)
	}
	ctx.state = StatePhysicalDeviceSelected

	ctx.device, ctx.graphicsQueue, ctx.presentQueue, err = BuildLogicalDevice(ctx.physicalDevice, ctx.indices, cfg.DeviceExtensions)
	if err != nil {
		return fail(err)
	}
	ctx.state = StateLogicalDeviceReady

	log.Info("bootstrap complete")
	return ctx, nil
}

// release destroys whatever has been acquired so far, in strict
// reverse-creation order: device, messenger, surface, instance. Reordering
// these calls is undefined behavior in the native driver. Native destroy
// calls report no status, so this carries no error path.
func (c *Context) release() {
	if c.device != nil {
		c.device.Destroy()
		c.device = nil
	}
	if c.messenger != nil {
		c.messenger.Destroy()
		c.messenger = nil
	}
	if c.surface != nil {
		c.surface.Destroy()
		c.surface = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
}

// Destroy tears the context down. Single-call contract: once called the
// context must not be used again; repeated calls are guarded no-ops.
func (c *Context) Destroy() {
	if c.state == StateDestroyed {
		log.Warn("context destroyed twice")
		return
	}
	c.release()
	c.graphicsQueue = nil
	c.presentQueue = nil
	c.physicalDevice = nil
	c.state = StateDestroyed
}

// State returns the current bootstrap state.
func (c *Context) State() State { return c.state }

// Instance returns the borrowed instance handle.
func (c *Context) Instance() Instance { return c.instance }

// Surface returns the borrowed surface handle.
func (c *Context) Surface() Surface { return c.surface }

// PhysicalDevice returns the selected physical device.
func (c *Context) PhysicalDevice() PhysicalDevice { return c.physicalDevice }

// QueueFamilies returns the resolved queue family indices.
func (c *Context) QueueFamilies() QueueFamilyIndices { return c.indices }

// Device returns the borrowed logical device handle.
func (c *Context) Device() Device { return c.device }

// GraphicsQueue returns the borrowed graphics queue handle.
func (c *Context) GraphicsQueue() Queue { return c.graphicsQueue }

// PresentQueue returns the borrowed presentation queue handle.
func (c *Context) PresentQueue() Queue { return c.presentQueue }
