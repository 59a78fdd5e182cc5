// Package memory implements device-memory allocation and the
// resource+memory bundle that keeps a Vulkan buffer or image validly
// bound to backing storage.
package memory

import (
	"unsafe"

	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory is an owned vk.DeviceMemory allocation with its property
// flags and an optional persistent host mapping.
//
// Grounded on vulkan-go-asche/extensions.go's CreateBuffer (map/copy/unmap
// sequence) and FindRequiredMemoryType (memory-type search), generalized
// into a standalone allocation that outlives any one buffer or image.
type DeviceMemory struct {
	device    vk.Device
	handle    vk.DeviceMemory
	size      vk.DeviceSize
	flags     vk.MemoryPropertyFlags
	memType   uint32
	mapped    []byte
	mappedOffset vk.DeviceSize
	mappedSize   vk.DeviceSize
	atomSize     vk.DeviceSize
	persistent bool
}

func (m *DeviceMemory) Handle() vk.DeviceMemory      { return m.handle }
func (m *DeviceMemory) Size() vk.DeviceSize          { return m.size }
func (m *DeviceMemory) PropertyFlags() vk.MemoryPropertyFlags { return m.flags }
func (m *DeviceMemory) IsHostVisible() bool {
	return m.flags&vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit) != 0
}
func (m *DeviceMemory) IsHostCoherent() bool {
	return m.flags&vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit) != 0
}

// FindMemoryType searches props for a type whose bit is set in
// typeBits and whose property flags are a superset of required,
// matching FindRequiredMemoryType's scan order (lowest index wins).
func FindMemoryType(props vk.PhysicalDeviceMemoryProperties, typeBits uint32, required vk.MemoryPropertyFlagBits) (uint32, bool) {
	for i := uint32(0); i < vk.MaxMemoryTypes; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		props.MemoryTypes[i].Deref()
		if props.MemoryTypes[i].PropertyFlags&vk.MemoryPropertyFlags(required) == vk.MemoryPropertyFlags(required) {
			return i, true
		}
	}
	return 0, false
}

// Allocate reserves size bytes of device memory of a type matching
// typeBits and preferredFlags, falling back to any type satisfying
// typeBits alone (matching FindRequiredMemoryTypeFallback) if the
// preferred flags cannot be met.
func Allocate(device vk.Device, props vk.PhysicalDeviceMemoryProperties, size vk.DeviceSize, typeBits uint32, preferredFlags vk.MemoryPropertyFlagBits) (*DeviceMemory, gfxcore.Result) {
	memType, ok := FindMemoryType(props, typeBits, preferredFlags)
	if !ok {
		memType, ok = FindMemoryType(props, typeBits, 0)
		if !ok {
			return nil, gfxcore.ErrorFeatureNotPresent
		}
	}
	props.MemoryTypes[memType].Deref()
	flags := props.MemoryTypes[memType].PropertyFlags

	var handle vk.DeviceMemory
	ret := vk.AllocateMemory(device, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  size,
		MemoryTypeIndex: memType,
	}, nil, &handle)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	return &DeviceMemory{
		device:  device,
		handle:  handle,
		size:    size,
		flags:   flags,
		memType: memType,
	}, gfxcore.Success
}

// Map establishes (or returns the existing) host mapping over
// [offset, offset+size). atomSize is the device's non-coherent atom
// granularity (pass 0 for host-coherent memory, where it goes unused);
// Unmap needs it to flush the right range automatically. persistent keeps
// the mapping open across Map/Unmap calls until Release, matching the
// staging-buffer pool's need to map once and reuse across many transfers.
func (m *DeviceMemory) Map(offset, size, atomSize vk.DeviceSize, persistent bool) ([]byte, gfxcore.Result) {
	if m.mapped != nil {
		return m.mapped, gfxcore.Success
	}
	var ptr unsafe.Pointer
	ret := vk.MapMemory(m.device, m.handle, offset, size, 0, &ptr)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	m.mapped = unsafe.Slice((*byte)(ptr), int(size))
	m.mappedOffset = offset
	m.mappedSize = size
	m.atomSize = atomSize
	m.persistent = persistent
	return m.mapped, gfxcore.Success
}

// MapForFetch maps like Map, then for non-coherent memory invalidates the
// range so a subsequent host read observes the device's latest writes.
func (m *DeviceMemory) MapForFetch(offset, size, atomSize vk.DeviceSize, persistent bool) ([]byte, gfxcore.Result) {
	mapped, res := m.Map(offset, size, atomSize, persistent)
	if res != gfxcore.Success {
		return nil, res
	}
	if res := m.Invalidate(offset, size, atomSize); res != gfxcore.Success {
		return nil, res
	}
	return mapped, gfxcore.Success
}

// Unmap flushes the mapped range on non-coherent memory, then releases
// the host mapping unless it was established as persistent (a persistent
// mapping is flushed explicitly by the caller via Flush between writes,
// and only ever really unmapped by Release's implicit vkFreeMemory).
func (m *DeviceMemory) Unmap() {
	if m.mapped == nil || m.persistent {
		return
	}
	if !m.IsHostCoherent() {
		m.Flush(m.mappedOffset, m.mappedSize, m.atomSize)
	}
	vk.UnmapMemory(m.device, m.handle)
	m.mapped = nil
}

// Flush issues vkFlushMappedMemoryRanges over [offset, offset+size),
// rounding to the device's non-coherent atom size, required before a
// device read following a non-coherent host write.
func (m *DeviceMemory) Flush(offset, size vk.DeviceSize, atomSize vk.DeviceSize) gfxcore.Result {
	if m.IsHostCoherent() {
		return gfxcore.Success
	}
	alignedOffset, alignedSize := alignRange(offset, size, atomSize, m.size)
	ret := vk.FlushMappedMemoryRanges(m.device, 1, []vk.MappedMemoryRange{{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: m.handle,
		Offset: alignedOffset,
		Size:   alignedSize,
	}})
	return gfxcore.FromVkResult(ret)
}

// Invalidate issues vkInvalidateMappedMemoryRanges, required before a host
// read following a non-coherent device write.
func (m *DeviceMemory) Invalidate(offset, size vk.DeviceSize, atomSize vk.DeviceSize) gfxcore.Result {
	if m.IsHostCoherent() {
		return gfxcore.Success
	}
	alignedOffset, alignedSize := alignRange(offset, size, atomSize, m.size)
	ret := vk.InvalidateMappedMemoryRanges(m.device, 1, []vk.MappedMemoryRange{{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: m.handle,
		Offset: alignedOffset,
		Size:   alignedSize,
	}})
	return gfxcore.FromVkResult(ret)
}

// alignRange rounds offset down and size up to atomSize, the granularity
// vkFlushMappedMemoryRanges/vkInvalidateMappedMemoryRanges require on
// non-coherent memory, then clamps the rounded-up end to allocSize (a
// range abutting the end of the allocation must not round past it).
func alignRange(offset, size, atomSize, allocSize vk.DeviceSize) (vk.DeviceSize, vk.DeviceSize) {
	if atomSize == 0 {
		return offset, size
	}
	alignedOffset := (offset / atomSize) * atomSize
	end := offset + size
	alignedEnd := ((end + atomSize - 1) / atomSize) * atomSize
	if allocSize > 0 && alignedEnd > allocSize {
		alignedEnd = allocSize
	}
	return alignedOffset, alignedEnd - alignedOffset
}

// Release frees the underlying allocation. Any outstanding mapping is
// implicitly invalidated by vkFreeMemory per the Vulkan spec, so Release
// does not call Unmap first.
func (m *DeviceMemory) Release() {
	if m.handle == vk.DeviceMemory(vk.NullHandle) {
		return
	}
	vk.FreeMemory(m.device, m.handle, nil)
	m.handle = vk.DeviceMemory(vk.NullHandle)
	m.mapped = nil
}
