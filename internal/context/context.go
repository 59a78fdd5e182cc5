// Package context is the engine-wide device façade: one graphics command
// pool (plus a transfer command buffer carved from it), an optional
// compute command pool, and an optional distinct present command pool
// when the present family differs from graphics under exclusive sharing.
// It is the single place submission, frame callbacks, and the present
// ownership-release barrier live, so higher layers never touch raw
// vk.Queue/vk.CommandPool handles directly.
//
// Grounded on vulkan-go-asche/context.go's context struct (cmdPool,
// presentCmdPool, separatePresentQueue, frame-lagged fences) and its
// Submit/destroy sequencing, generalized from one fixed swapchain-present
// loop into reusable submission helpers plus a named callback registry.
package context

import (
	"fmt"
	"sync"

	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"
	"github.com/baopinshui/NPGS-sub000/internal/handle"

	vk "github.com/vulkan-go/vulkan"
)

// Context is the process-wide façade singleton. Create exactly one per
// logical device.
type Context struct {
	device *gfxcore.Device

	graphicsPool *handle.CommandPool
	presentPool  *handle.CommandPool // nil unless HasSeparatePresentQueue
	computePool  *handle.CommandPool // nil unless compute is a family distinct from graphics

	transferCmd vk.CommandBuffer

	callbacks callbackSets

	mu sync.Mutex
}

var (
	instance   *Context
	instanceMu sync.Mutex
)

// Create builds the façade for device and installs it as the process
// singleton, replacing any previous one without tearing it down (callers
// destroying a device are expected to call Destroy first).
func Create(device *gfxcore.Device) (*Context, gfxcore.Result) {
	graphicsPool, res := handle.NewCommandPool(device.Handle(), device.Families().Graphics, vk.CommandBufferLevelPrimary)
	if res != gfxcore.Success {
		return nil, res
	}

	c := &Context{device: device, graphicsPool: graphicsPool}

	if device.Families().Compute != gfxcore.QueueIgnored && device.Families().Compute != device.Families().Graphics {
		computePool, res := handle.NewCommandPool(device.Handle(), device.Families().Compute, vk.CommandBufferLevelPrimary)
		if res != gfxcore.Success {
			graphicsPool.Destroy()
			return nil, res
		}
		c.computePool = computePool
	}

	if device.HasSeparatePresentQueue() {
		presentPool, res := handle.NewCommandPool(device.Handle(), device.Families().Present, vk.CommandBufferLevelPrimary)
		if res != gfxcore.Success {
			c.releasePools()
			return nil, res
		}
		c.presentPool = presentPool
	}

	transferCmd, res := graphicsPool.Acquire()
	if res != gfxcore.Success {
		c.releasePools()
		return nil, res
	}
	c.transferCmd = transferCmd

	instanceMu.Lock()
	instance = c
	instanceMu.Unlock()

	c.callbacks.onCreateDevice.Fire()

	return c, gfxcore.Success
}

// Instance returns the process-wide façade, or nil if Create has not run.
func Instance() *Context {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	return instance
}

func (c *Context) releasePools() {
	if c.presentPool != nil {
		c.presentPool.Destroy()
		c.presentPool = nil
	}
	if c.computePool != nil {
		c.computePool.Destroy()
		c.computePool = nil
	}
	if c.graphicsPool != nil {
		c.graphicsPool.Destroy()
		c.graphicsPool = nil
	}
}

// Device returns the device this façade wraps.
func (c *Context) Device() *gfxcore.Device { return c.device }

// GraphicsPool returns the graphics-family command pool.
func (c *Context) GraphicsPool() *handle.CommandPool { return c.graphicsPool }

// PresentPool returns the present-family command pool, or nil when
// graphics and present share a family (HasSeparatePresentQueue is false).
func (c *Context) PresentPool() *handle.CommandPool { return c.presentPool }

// ComputePool returns the compute-family command pool, or nil when the
// device has no distinct compute queue.
func (c *Context) ComputePool() *handle.CommandPool { return c.computePool }

// TransferCommandBuffer returns the single long-lived command buffer
// carved from the graphics pool for one-off transfer recordings
// (texture uploads, buffer copies) outside the per-frame render loop.
func (c *Context) TransferCommandBuffer() vk.CommandBuffer { return c.transferCmd }

// OnCreateDevice registers a thunk in the create-device registry. Create
// fires that registry once, on the new Context before any caller can
// register on it, so thunks registered here are not invoked by this
// package.
func (c *Context) OnCreateDevice(name string, thunk func()) int {
	return c.callbacks.onCreateDevice.Register(name, thunk)
}

// OnDestroyDevice registers a thunk fired during Destroy, in registration
// order (not reverse order -- a deliberate, documented departure from a
// typical LIFO teardown stack).
func (c *Context) OnDestroyDevice(name string, thunk func()) int {
	return c.callbacks.onDestroyDevice.Register(name, thunk)
}

// OnCreateSwapchain registers a thunk fired after a swapchain (re)build.
func (c *Context) OnCreateSwapchain(name string, thunk func()) int {
	return c.callbacks.onCreateSwapchain.Register(name, thunk)
}

// OnDestroySwapchain registers a thunk fired before a swapchain teardown,
// in registration order.
func (c *Context) OnDestroySwapchain(name string, thunk func()) int {
	return c.callbacks.onDestroySwapchain.Register(name, thunk)
}

// FireCreateSwapchain runs every create-swapchain callback in
// registration order. Called by the swapchain owner after a successful
// (re)build.
func (c *Context) FireCreateSwapchain() { c.callbacks.onCreateSwapchain.Fire() }

// FireDestroySwapchain runs every destroy-swapchain callback in
// registration order, before the swapchain owner tears down images.
func (c *Context) FireDestroySwapchain() { c.callbacks.onDestroySwapchain.Fire() }

// NewAutoRemoveGroup returns a group a caller can use to register several
// callbacks and later remove all of them with one call.
func (c *Context) NewAutoRemoveGroup() *AutoRemoveGroup {
	return &AutoRemoveGroup{sets: &c.callbacks}
}

// Destroy fires every destroy-device callback (registration order), then
// waits for the device to go idle and releases the façade's own pools.
func (c *Context) Destroy() {
	c.callbacks.onDestroyDevice.Fire()

	c.device.WaitIdle()
	c.releasePools()

	instanceMu.Lock()
	if instance == c {
		instance = nil
	}
	instanceMu.Unlock()
}

// queueFor maps a queue family index to its vk.Queue, returning an
// error for an index this façade has no queue for.
func (c *Context) queueFor(family uint32) (vk.Queue, error) {
	switch family {
	case c.device.Families().Graphics:
		return c.device.GraphicsQueue(), nil
	case c.device.Families().Present:
		return c.device.PresentQueue(), nil
	case c.device.Families().Compute:
		return c.device.ComputeQueue(), nil
	default:
		return nil, fmt.Errorf("context: no queue for family %d", family)
	}
}

// SubmitInfo submits a fully-built vk.SubmitInfo to the queue owning
// family, signaling fence (may be nil) on completion.
func (c *Context) SubmitInfo(family uint32, info vk.SubmitInfo, fence *handle.Fence) gfxcore.Result {
	queue, err := c.queueFor(family)
	if err != nil {
		return gfxcore.ErrorFeatureNotPresent
	}
	var f vk.Fence
	if fence != nil {
		f = fence.Handle()
	}
	ret := vk.QueueSubmit(queue, 1, []vk.SubmitInfo{info}, f)
	return gfxcore.FromVkResult(ret)
}

// Submit submits a single command buffer with no semaphore dependencies,
// signaling fence (may be nil) on completion.
func (c *Context) Submit(family uint32, buffer vk.CommandBuffer, fence *handle.Fence) gfxcore.Result {
	return c.SubmitInfo(family, vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{buffer},
	}, fence)
}

// SubmitSync submits a single command buffer with at most one wait and
// one signal semaphore; a null semaphore is omitted from the submit info
// rather than passed through as a zero handle.
func (c *Context) SubmitSync(family uint32, buffer vk.CommandBuffer, waitSem, signalSem vk.Semaphore, fence *handle.Fence, waitStage vk.PipelineStageFlags) gfxcore.Result {
	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{buffer},
	}
	if waitSem != vk.NullSemaphore {
		info.WaitSemaphoreCount = 1
		info.PWaitSemaphores = []vk.Semaphore{waitSem}
		info.PWaitDstStageMask = []vk.PipelineStageFlags{waitStage}
	}
	if signalSem != vk.NullSemaphore {
		info.SignalSemaphoreCount = 1
		info.PSignalSemaphores = []vk.Semaphore{signalSem}
	}
	return c.SubmitInfo(family, info, fence)
}

// ExecuteGraphicsCommands submits buffer to the graphics queue with a
// local fence and blocks until it completes: shorthand for the
// submit-then-wait pattern one-off transfer recordings need.
func (c *Context) ExecuteGraphicsCommands(buffer vk.CommandBuffer) gfxcore.Result {
	fence, res := handle.NewFence(c.device.Handle(), false)
	if res != gfxcore.Success {
		return res
	}
	defer fence.Destroy()

	if res := c.Submit(c.device.Families().Graphics, buffer, fence); res != gfxcore.Success {
		return res
	}
	return fence.Wait(vk.MaxUint64)
}
