package memory

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"

	vk "github.com/vulkan-go/vulkan"
)

// ResourceKind distinguishes the two Vulkan object kinds a ResourceMemory
// bundle can wrap, since buffers and images query/bind memory through
// distinct (but structurally parallel) entry points.
type ResourceKind int

const (
	ResourceBuffer ResourceKind = iota
	ResourceImage
)

// ResourceMemory bundles a buffer or image with the DeviceMemory backing
// it and tracks whether the bind has actually happened yet -- a resource
// can be legally created and have its memory requirements queried before
// any allocation exists, and bMemoryBound guards against using it earlier.
//
// Grounded on vulkan-go-asche/swapchain.go's CreateFrameBuffer (depth
// image: create -> query requirements -> find type -> allocate -> bind)
// generalized to cover buffers via the same shape.
type ResourceMemory struct {
	device       vk.Device
	kind         ResourceKind
	buffer       vk.Buffer
	image        vk.Image
	mem          *DeviceMemory
	bMemoryBound bool
}

func (r *ResourceMemory) Buffer() vk.Buffer     { return r.buffer }
func (r *ResourceMemory) Image() vk.Image       { return r.image }
func (r *ResourceMemory) Memory() *DeviceMemory { return r.mem }
func (r *ResourceMemory) IsBound() bool         { return r.bMemoryBound }

// PooledAllocator is the collaborator interface a sub-allocating pool
// library would implement; in its absence ManualPooledAllocator
// (allocator.go) performs a one-allocation-per-resource fallback using
// the same FindMemoryType search as a manual caller would.
type PooledAllocator interface {
	AllocateForBuffer(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, buffer vk.Buffer, preferred vk.MemoryPropertyFlagBits) (*DeviceMemory, gfxcore.Result)
	AllocateForImage(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, image vk.Image, preferred vk.MemoryPropertyFlagBits) (*DeviceMemory, gfxcore.Result)
	Free(mem *DeviceMemory)
}

// BindBuffer queries buffer's memory requirements, allocates (via pool if
// non-nil, else a manual direct allocation) and binds. Passing a nil pool
// exercises the "manual allocation path"; a non-nil pool exercises the
// "pooled allocation path".
func BindBuffer(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, buffer vk.Buffer, preferred vk.MemoryPropertyFlagBits, pool PooledAllocator) (*ResourceMemory, gfxcore.Result) {
	r := &ResourceMemory{device: device, kind: ResourceBuffer, buffer: buffer}

	var mem *DeviceMemory
	var res gfxcore.Result
	if pool != nil {
		mem, res = pool.AllocateForBuffer(device, memProps, buffer, preferred)
	} else {
		var reqs vk.MemoryRequirements
		vk.GetBufferMemoryRequirements(device, buffer, &reqs)
		reqs.Deref()
		mem, res = Allocate(device, memProps, reqs.Size, reqs.MemoryTypeBits, preferred)
	}
	if res != gfxcore.Success {
		return r, res
	}

	ret := vk.BindBufferMemory(device, buffer, mem.Handle(), 0)
	if gfxcore.IsError(ret) {
		mem.Release()
		return r, gfxcore.FromVkResult(ret)
	}
	r.mem = mem
	r.bMemoryBound = true
	return r, gfxcore.Success
}

// BindImage is BindBuffer's image-side counterpart.
func BindImage(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, image vk.Image, preferred vk.MemoryPropertyFlagBits, pool PooledAllocator) (*ResourceMemory, gfxcore.Result) {
	r := &ResourceMemory{device: device, kind: ResourceImage, image: image}

	var mem *DeviceMemory
	var res gfxcore.Result
	if pool != nil {
		mem, res = pool.AllocateForImage(device, memProps, image, preferred)
	} else {
		var reqs vk.MemoryRequirements
		vk.GetImageMemoryRequirements(device, image, &reqs)
		reqs.Deref()
		mem, res = Allocate(device, memProps, reqs.Size, reqs.MemoryTypeBits, preferred)
	}
	if res != gfxcore.Success {
		return r, res
	}

	ret := vk.BindImageMemory(device, image, mem.Handle(), 0)
	if gfxcore.IsError(ret) {
		mem.Release()
		return r, gfxcore.FromVkResult(ret)
	}
	r.mem = mem
	r.bMemoryBound = true
	return r, gfxcore.Success
}

// Release destroys the underlying buffer/image and frees its memory, via
// pool if given (pool owns recycling decisions) or directly otherwise.
func (r *ResourceMemory) Release(pool PooledAllocator) {
	switch r.kind {
	case ResourceBuffer:
		if r.buffer != vk.Buffer(vk.NullHandle) {
			vk.DestroyBuffer(r.device, r.buffer, nil)
			r.buffer = vk.Buffer(vk.NullHandle)
		}
	case ResourceImage:
		if r.image != vk.Image(vk.NullHandle) {
			vk.DestroyImage(r.device, r.image, nil)
			r.image = vk.Image(vk.NullHandle)
		}
	}
	if r.mem == nil {
		return
	}
	if pool != nil {
		pool.Free(r.mem)
	} else {
		r.mem.Release()
	}
	r.mem = nil
	r.bMemoryBound = false
}
