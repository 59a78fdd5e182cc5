// Package transfer implements the host-to-device data path: an
// expandable pool of staging buffers, a device-local buffer helper that
// picks a direct-map or staging-relayed path, and the texture upload
// orchestrator with mipmap generation.
package transfer

import (
	"github.com/baopinshui/NPGS-sub000/internal/formats"
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"
	"github.com/baopinshui/NPGS-sub000/internal/memory"

	vk "github.com/vulkan-go/vulkan"
)

// StagingBuffer is a host-visible, host-coherent buffer sized for one
// in-flight upload. A StagingBuffer keeps the size it was created with;
// it has no way to grow. When a transfer needs more room than any free
// buffer in StagingBufferPool has, the pool allocates an additional,
// larger buffer and the smaller ones stay in the pool.
//
// Grounded on vulkan-go-asche/extensions.go's CreateBuffer (host-visible
// allocation + persistent-style map/copy/unmap sequence), generalized
// into a reusable, resizable buffer instead of a one-shot helper.
type StagingBuffer struct {
	device  vk.Device
	buffer  vk.Buffer
	res     *memory.ResourceMemory
	size    vk.DeviceSize
	mapped  []byte
}

func (s *StagingBuffer) Handle() vk.Buffer   { return s.buffer }
func (s *StagingBuffer) Size() vk.DeviceSize { return s.size }
func (s *StagingBuffer) Bytes() []byte       { return s.mapped }

// NewStagingBuffer allocates a host-visible|host-coherent buffer of size
// bytes and leaves it persistently mapped. atomSize is the device's
// non-coherent atom granularity, needed on the rare hardware where no
// memory type backing this buffer's requirements is actually coherent.
func NewStagingBuffer(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, atomSize vk.DeviceSize, size vk.DeviceSize) (*StagingBuffer, gfxcore.Result) {
	var buffer vk.Buffer
	ret := vk.CreateBuffer(device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit) | vk.BufferUsageFlags(vk.BufferUsageTransferDstBit),
		SharingMode: vk.SharingModeExclusive,
	}, nil, &buffer)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}

	preferred := vk.MemoryPropertyFlagBits(vk.MemoryPropertyHostVisibleBit) | vk.MemoryPropertyFlagBits(vk.MemoryPropertyHostCoherentBit)
	res, resResult := memory.BindBuffer(device, memProps, buffer, preferred, nil)
	if resResult != gfxcore.Success {
		vk.DestroyBuffer(device, buffer, nil)
		return nil, resResult
	}

	mapped, mapResult := res.Memory().Map(0, size, atomSize, true)
	if mapResult != gfxcore.Success {
		res.Release(nil)
		return nil, mapResult
	}

	return &StagingBuffer{
		device: device,
		buffer: buffer,
		res:    res,
		size:   size,
		mapped: mapped,
	}, gfxcore.Success
}

// CanAlias reports whether this buffer's memory can back an aliased
// image of the given size and required memory properties -- both must
// share the same underlying allocation's property flags and the
// allocation must be at least as large as the image needs.
func (s *StagingBuffer) CanAlias(requiredSize vk.DeviceSize, requiredFlags vk.MemoryPropertyFlagBits) bool {
	if s.res == nil || !s.res.IsBound() {
		return false
	}
	if s.size < requiredSize {
		return false
	}
	return s.res.Memory().PropertyFlags()&vk.MemoryPropertyFlags(requiredFlags) == vk.MemoryPropertyFlags(requiredFlags)
}

// CreateAliasedImage binds a linear-tiled, transfer-src image of format
// over the staging buffer's own memory at offset 0, so a CPU-written
// source-format layout can be blitted directly into a destination
// without a second host-side reformat pass. Returns a null image and a
// non-success result if any precondition fails; the staging buffer's
// memory is left untouched either way.
func CreateAliasedImage(device vk.Device, staging *StagingBuffer, format vk.Format, extent vk.Extent3D, layers uint32) (vk.Image, gfxcore.Result) {
	meta := formats.Lookup(format)
	requiredSize := vk.DeviceSize(extent.Width) * vk.DeviceSize(extent.Height) * vk.DeviceSize(extent.Depth) * vk.DeviceSize(meta.PixelSize) * vk.DeviceSize(layers)
	if !staging.CanAlias(requiredSize, vk.MemoryPropertyFlagBits(vk.MemoryPropertyHostVisibleBit)) {
		return vk.NullImage, gfxcore.ErrorFeatureNotPresent
	}

	var image vk.Image
	ret := vk.CreateImage(device, &vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     vk.ImageType2d,
		Format:        format,
		Extent:        extent,
		MipLevels:     1,
		ArrayLayers:   layers,
		Samples:       vk.SampleCount1Bit,
		Tiling:        vk.ImageTilingLinear,
		Usage:         vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutPreinitialized,
	}, nil, &image)
	if gfxcore.IsError(ret) {
		return vk.NullImage, gfxcore.FromVkResult(ret)
	}

	var reqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(device, image, &reqs)
	reqs.Deref()
	if reqs.Size > staging.Size() {
		vk.DestroyImage(device, image, nil)
		return vk.NullImage, gfxcore.ErrorFeatureNotPresent
	}

	ret = vk.BindImageMemory(device, image, staging.res.Memory().Handle(), 0)
	if gfxcore.IsError(ret) {
		vk.DestroyImage(device, image, nil)
		return vk.NullImage, gfxcore.FromVkResult(ret)
	}
	return image, gfxcore.Success
}

// Destroy releases the buffer and its memory.
func (s *StagingBuffer) Destroy() {
	if s.res != nil {
		s.res.Memory().Unmap()
		s.res.Release(nil)
		s.res = nil
	}
	s.mapped = nil
}
