package handle

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"

	vk "github.com/vulkan-go/vulkan"
)

// CommandPool allocates and recycles command buffers for a single queue
// family. Not safe for concurrent use from multiple goroutines; callers
// needing parallel recording keep one pool per thread, per Vulkan's own
// external-synchronization rule for vkResetCommandPool.
//
// Grounded on vulkan-go-asche/managers.go's CommandBufferManager: pool
// creation with CommandPoolCreateResetCommandBufferBit, lazy buffer
// allocation, and per-frame reuse via reset rather than reallocation.
type CommandPool struct {
	device  vk.Device
	pool    Handle[vk.CommandPool]
	level   vk.CommandBufferLevel
	buffers []vk.CommandBuffer
	count   uint32
}

// NewCommandPool creates a pool bound to queueFamily, allocating buffers
// of the given level on demand.
func NewCommandPool(device vk.Device, queueFamily uint32, level vk.CommandBufferLevel) (*CommandPool, gfxcore.Result) {
	var raw vk.CommandPool
	ret := vk.CreateCommandPool(device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: queueFamily,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}, nil, &raw)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	return &CommandPool{
		device: device,
		level:  level,
		pool: Wrap(raw, ReleaseDestroy, func(p vk.CommandPool) {
			vk.DestroyCommandPool(device, p, nil)
		}),
	}, gfxcore.Success
}

// Handle returns the underlying pool handle.
func (c *CommandPool) Handle() vk.CommandPool { return c.pool.Value() }

// Reset marks every buffer previously handed out as reusable again. It
// does not reset GPU-side state; callers still individually reset or begin
// each buffer they reacquire.
func (c *CommandPool) Reset() {
	c.count = 0
}

// ResetPool issues vkResetCommandPool, returning all buffers in the pool
// to the initial state in one call instead of per-buffer resets.
func (c *CommandPool) ResetPool(releaseResources bool) gfxcore.Result {
	var flags vk.CommandPoolResetFlags
	if releaseResources {
		flags = vk.CommandPoolResetFlags(vk.CommandPoolResetReleaseResourcesBit)
	}
	ret := vk.ResetCommandPool(c.device, c.pool.Value(), flags)
	c.count = 0
	return gfxcore.FromVkResult(ret)
}

// Acquire returns a fresh or recycled command buffer in the reset state.
func (c *CommandPool) Acquire() (vk.CommandBuffer, gfxcore.Result) {
	if c.count < uint32(len(c.buffers)) {
		buf := c.buffers[c.count]
		c.count++
		ret := vk.ResetCommandBuffer(buf, vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit))
		return buf, gfxcore.FromVkResult(ret)
	}
	c.buffers = append(c.buffers, nil)
	idx := c.count
	c.count++
	ret := vk.AllocateCommandBuffers(c.device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.pool.Value(),
		Level:              c.level,
		CommandBufferCount: 1,
	}, c.buffers[idx:idx+1])
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	return c.buffers[idx], gfxcore.Success
}

// Destroy frees all allocated command buffers and destroys the pool.
func (c *CommandPool) Destroy() {
	if len(c.buffers) > 0 {
		vk.FreeCommandBuffers(c.device, c.pool.Value(), uint32(len(c.buffers)), c.buffers)
		c.buffers = nil
	}
	c.pool.Release()
}
