package transfer

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"
	"github.com/baopinshui/NPGS-sub000/internal/memory"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceLocalBuffer wraps a buffer that prefers DEVICE_LOCAL memory. If
// the device exposes a host-visible+device-local heap (most discrete and
// all integrated GPUs do for small allocations), uploads map it directly;
// otherwise an upload goes through a caller-supplied staging buffer and a
// copy command.
//
// Grounded on vulkan-go-asche/extensions.go's CreateBuffer, generalized
// from "always host-visible" into the two-path policy: try direct map,
// fall back to stage-and-copy.
type DeviceLocalBuffer struct {
	device     vk.Device
	buffer     vk.Buffer
	res        *memory.ResourceMemory
	size       vk.DeviceSize
	atomSize   vk.DeviceSize
	hostVisible bool
}

func (b *DeviceLocalBuffer) Handle() vk.Buffer   { return b.buffer }
func (b *DeviceLocalBuffer) Size() vk.DeviceSize { return b.size }
func (b *DeviceLocalBuffer) IsHostVisible() bool { return b.hostVisible }

// NewDeviceLocalBuffer creates a buffer of size bytes with usage, also
// requesting TransferDst so staged uploads are always possible as a
// fallback even when the direct-map path succeeds. atomSize is the
// device's non-coherent atom granularity, needed by the direct-map
// path's Upload/Fetch when the bound memory turns out not host-coherent.
func NewDeviceLocalBuffer(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, atomSize vk.DeviceSize, size vk.DeviceSize, usage vk.BufferUsageFlagBits, pool memory.PooledAllocator) (*DeviceLocalBuffer, gfxcore.Result) {
	var buffer vk.Buffer
	ret := vk.CreateBuffer(device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(usage) | vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		SharingMode: vk.SharingModeExclusive,
	}, nil, &buffer)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}

	preferred := vk.MemoryPropertyFlagBits(vk.MemoryPropertyDeviceLocalBit) | vk.MemoryPropertyFlagBits(vk.MemoryPropertyHostVisibleBit)
	res, res1 := memory.BindBuffer(device, memProps, buffer, preferred, pool)
	hostVisible := res1 == gfxcore.Success && res.Memory().IsHostVisible()
	if res1 != gfxcore.Success {
		// Preferred flags unavailable together; fall back to pure
		// device-local and rely on the staging path for uploads.
		res, res1 = memory.BindBuffer(device, memProps, buffer, vk.MemoryPropertyFlagBits(vk.MemoryPropertyDeviceLocalBit), pool)
		if res1 != gfxcore.Success {
			vk.DestroyBuffer(device, buffer, nil)
			return nil, res1
		}
		hostVisible = false
	}

	return &DeviceLocalBuffer{
		device:      device,
		buffer:      buffer,
		res:         res,
		size:        size,
		atomSize:    atomSize,
		hostVisible: hostVisible,
	}, gfxcore.Success
}

// Upload writes data at byteOffset, either by mapping the buffer directly
// (fast path) or by writing through a staging buffer and recording a copy
// into submit (fallback path). Callers supply submit so the copy command
// can be chained with other transfer-queue work in one submission; submit
// is expected to block until that work completes (ExecuteGraphicsCommands
// does), since the staging buffer returns to the pool as soon as submit
// returns.
func (b *DeviceLocalBuffer) Upload(data []byte, byteOffset vk.DeviceSize, pool *StagingBufferPool, submit func(fn func(cmd vk.CommandBuffer))) gfxcore.Result {
	if b.hostVisible {
		mapped, res := b.res.Memory().Map(0, b.size, b.atomSize, false)
		if res != gfxcore.Success {
			return res
		}
		copy(mapped[byteOffset:], data)
		b.res.Memory().Unmap()
		return gfxcore.Success
	}

	staging, res := pool.Acquire(vk.DeviceSize(len(data)))
	if res != gfxcore.Success {
		return res
	}
	defer pool.Release(staging)
	copy(staging.Bytes(), data)

	submit(func(cmd vk.CommandBuffer) {
		vk.CmdCopyBuffer(cmd, staging.Handle(), b.buffer, 1, []vk.BufferCopy{{
			SrcOffset: 0,
			DstOffset: byteOffset,
			Size:      vk.DeviceSize(len(data)),
		}})
	})
	return gfxcore.Success
}

// Fetch reads len(dst) bytes at byteOffset back into dst, either by
// mapping the buffer directly and invalidating first (fast path) or by
// recording a device-to-staging copy into submit and reading the staging
// bytes once it returns (fallback path) -- Upload's two paths run in
// reverse.
func (b *DeviceLocalBuffer) Fetch(dst []byte, byteOffset vk.DeviceSize, pool *StagingBufferPool, submit func(fn func(cmd vk.CommandBuffer))) gfxcore.Result {
	if b.hostVisible {
		mapped, res := b.res.Memory().MapForFetch(0, b.size, b.atomSize, false)
		if res != gfxcore.Success {
			return res
		}
		copy(dst, mapped[byteOffset:byteOffset+vk.DeviceSize(len(dst))])
		b.res.Memory().Unmap()
		return gfxcore.Success
	}

	staging, res := pool.Acquire(vk.DeviceSize(len(dst)))
	if res != gfxcore.Success {
		return res
	}
	defer pool.Release(staging)

	submit(func(cmd vk.CommandBuffer) {
		vk.CmdCopyBuffer(cmd, b.buffer, staging.Handle(), 1, []vk.BufferCopy{{
			SrcOffset: byteOffset,
			DstOffset: 0,
			Size:      vk.DeviceSize(len(dst)),
		}})
	})
	copy(dst, staging.Bytes()[:len(dst)])
	return gfxcore.Success
}

// StridedUpload copies count elements of elementSize bytes from data into
// the buffer at a destination stride of dstStride bytes, used when the
// device-side layout packs fields more tightly or loosely than the
// source slice (e.g. std140 uniform array padding).
func StridedUpload(dst []byte, data []byte, elementSize, dstStride int, count int) {
	for i := 0; i < count; i++ {
		srcOff := i * elementSize
		dstOff := i * dstStride
		copy(dst[dstOff:dstOff+elementSize], data[srcOff:srcOff+elementSize])
	}
}

// Destroy releases the buffer and its memory.
func (b *DeviceLocalBuffer) Destroy(pool memory.PooledAllocator) {
	b.res.Release(pool)
}
