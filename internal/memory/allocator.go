package memory

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"

	vk "github.com/vulkan-go/vulkan"
)

// ManualPooledAllocator is the PooledAllocator fallback used when no
// sub-allocation library is wired in: every call allocates a dedicated
// vk.DeviceMemory the size of exactly one resource's requirements, same
// as a caller doing the allocation by hand. It exists so callers can
// always pass a PooledAllocator value (uniform code path) even when the
// engine has nothing smarter to offer yet.
type ManualPooledAllocator struct{}

func (ManualPooledAllocator) AllocateForBuffer(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, buffer vk.Buffer, preferred vk.MemoryPropertyFlagBits) (*DeviceMemory, gfxcore.Result) {
	var reqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(device, buffer, &reqs)
	reqs.Deref()
	return Allocate(device, memProps, reqs.Size, reqs.MemoryTypeBits, preferred)
}

func (ManualPooledAllocator) AllocateForImage(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, image vk.Image, preferred vk.MemoryPropertyFlagBits) (*DeviceMemory, gfxcore.Result) {
	var reqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(device, image, &reqs)
	reqs.Deref()
	return Allocate(device, memProps, reqs.Size, reqs.MemoryTypeBits, preferred)
}

func (ManualPooledAllocator) Free(mem *DeviceMemory) {
	mem.Release()
}
