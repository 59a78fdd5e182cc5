package transfer

import (
	"github.com/baopinshui/NPGS-sub000/internal/formats"
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"
	"github.com/baopinshui/NPGS-sub000/internal/memory"

	vk "github.com/vulkan-go/vulkan"
)

// Texture owns a finished, sampled image plus its default view.
type Texture struct {
	device vk.Device
	image  vk.Image
	view   vk.ImageView
	res    *memory.ResourceMemory
	format vk.Format
	extent vk.Extent3D
	layers uint32
	levels uint32
	layout vk.ImageLayout
}

func (t *Texture) Image() vk.Image        { return t.image }
func (t *Texture) View() vk.ImageView     { return t.view }
func (t *Texture) Format() vk.Format      { return t.format }
func (t *Texture) Layout() vk.ImageLayout { return t.layout }

// UploadOptions describes one texture-upload request.
//
// Filter's zero value (vk.FilterNearest) is indistinguishable from an
// unset Filter: pickFilter substitutes Linear for it, so Nearest
// filtering cannot be selected through UploadOptions.
type UploadOptions struct {
	SourceFormat    vk.Format
	TargetFormat    vk.Format
	ImageType       vk.ImageType
	ViewType        vk.ImageViewType
	Extent          vk.Extent3D
	ArrayLayers     uint32
	GenerateMipmaps bool
	Filter          vk.Filter
}

// DefaultUploadOptions returns an UploadOptions with Filter pinned to
// Linear, so construction through this constructor never hits the
// zero-value ambiguity between "unset" and "explicitly Nearest".
func DefaultUploadOptions() UploadOptions {
	return UploadOptions{Filter: vk.FilterLinear}
}

// MipLevelsFor returns ⌊log2(max(w,h,d))⌋+1 when generate is true, else 1.
func MipLevelsFor(extent vk.Extent3D, generate bool) uint32 {
	if !generate {
		return 1
	}
	m := extent.Width
	if extent.Height > m {
		m = extent.Height
	}
	if extent.Depth > m {
		m = extent.Depth
	}
	levels := uint32(1)
	for m > 1 {
		m >>= 1
		levels++
	}
	return levels
}

// barrier is the optional pre/post descriptor the blit/copy helpers take.
// Enable == false means the caller is managing that side's layout itself,
// so no barrier command is recorded for it.
type barrier struct {
	Stage  vk.PipelineStageFlagBits
	Access vk.AccessFlagBits
	Layout vk.ImageLayout
	Enable bool
}

func noBarrier() barrier { return barrier{} }

func imageRangeBarrier(cmd vk.CommandBuffer, image vk.Image, aspect vk.ImageAspectFlagBits,
	baseLevel, levelCount, baseLayer, layerCount uint32,
	srcStage, dstStage vk.PipelineStageFlagBits,
	srcAccess, dstAccess vk.AccessFlagBits,
	oldLayout, newLayout vk.ImageLayout) {
	vk.CmdPipelineBarrier(cmd, vk.PipelineStageFlags(srcStage), vk.PipelineStageFlags(dstStage), 0,
		0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{{
			SType:               vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask:       vk.AccessFlags(srcAccess),
			DstAccessMask:       vk.AccessFlags(dstAccess),
			OldLayout:           oldLayout,
			NewLayout:           newLayout,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               image,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(aspect),
				BaseMipLevel:   baseLevel,
				LevelCount:     levelCount,
				BaseArrayLayer: baseLayer,
				LayerCount:     layerCount,
			},
		}})
}

// recordCopyBufferToImage copies mip level 0 of every layer from src into
// dst, optionally wrapping the copy with a pre barrier (driving dst into
// transfer-dst-optimal) and a post barrier (driving it onward). Either
// side is skipped when its Enable flag is false.
func recordCopyBufferToImage(cmd vk.CommandBuffer, src vk.Buffer, dst vk.Image, extent vk.Extent3D, layers uint32, pre, post barrier) {
	if pre.Enable {
		imageRangeBarrier(cmd, dst, vk.ImageAspectColorBit, 0, 1, 0, layers,
			vk.PipelineStageTopOfPipeBit, pre.Stage, 0, pre.Access,
			vk.ImageLayoutUndefined, pre.Layout)
	}
	vk.CmdCopyBufferToImage(cmd, src, dst, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{{
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: layers,
		},
		ImageExtent: extent,
	}})
	if post.Enable {
		imageRangeBarrier(cmd, dst, vk.ImageAspectColorBit, 0, 1, 0, layers,
			vk.PipelineStageTransferBit, post.Stage, vk.AccessTransferWriteBit, post.Access,
			vk.ImageLayoutTransferDstOptimal, post.Layout)
	}
}

// recordBlitLevel blits one full-extent region (every layer, one mip
// level each side) from src to dst, optionally wrapped with pre/post
// barriers on the destination image the same way recordCopyBufferToImage
// is.
func recordBlitLevel(cmd vk.CommandBuffer, src vk.Image, srcLayout vk.ImageLayout, srcLevel uint32, srcExtent vk.Extent3D,
	dst vk.Image, dstLevel uint32, dstExtent vk.Extent3D, layers uint32, filter vk.Filter, pre, post barrier) {
	if pre.Enable {
		imageRangeBarrier(cmd, dst, vk.ImageAspectColorBit, dstLevel, 1, 0, layers,
			vk.PipelineStageTopOfPipeBit, pre.Stage, 0, pre.Access,
			vk.ImageLayoutUndefined, pre.Layout)
	}
	vk.CmdBlitImage(cmd, src, srcLayout, dst, vk.ImageLayoutTransferDstOptimal,
		1, []vk.ImageBlit{{
			SrcSubresource: vk.ImageSubresourceLayers{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				MipLevel:   srcLevel,
				LayerCount: layers,
			},
			SrcOffsets: [2]vk.Offset3D{{}, {X: int32(srcExtent.Width), Y: int32(srcExtent.Height), Z: int32(srcExtent.Depth)}},
			DstSubresource: vk.ImageSubresourceLayers{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				MipLevel:   dstLevel,
				LayerCount: layers,
			},
			DstOffsets: [2]vk.Offset3D{{}, {X: int32(dstExtent.Width), Y: int32(dstExtent.Height), Z: int32(dstExtent.Depth)}},
		}}, filter)
	if post.Enable {
		imageRangeBarrier(cmd, dst, vk.ImageAspectColorBit, dstLevel, 1, 0, layers,
			vk.PipelineStageTransferBit, post.Stage, vk.AccessTransferWriteBit, post.Access,
			vk.ImageLayoutTransferDstOptimal, post.Layout)
	}
}

// generateMipmaps implements the per-level blit chain: for multi-layer
// images, one barrier and one blit call per level covers every layer at
// once; single-layer images reuse the same path with layerCount 1.
//
// Transition level i to transfer-dst, blit level i-1 (transfer-src) into
// it, halving extents each step clamped at 1, then transition level i to
// transfer-src so it sources the next iteration. A final range barrier
// covers every level at once going to finalLayout.
func generateMipmaps(cmd vk.CommandBuffer, image vk.Image, extent vk.Extent3D, levels, layers uint32, filter vk.Filter, finalLayout vk.ImageLayout) {
	prevExtent := extent

	for level := uint32(1); level < levels; level++ {
		nextExtent := vk.Extent3D{Width: prevExtent.Width, Height: prevExtent.Height, Depth: prevExtent.Depth}
		if nextExtent.Width > 1 {
			nextExtent.Width /= 2
		}
		if nextExtent.Height > 1 {
			nextExtent.Height /= 2
		}
		if nextExtent.Depth > 1 {
			nextExtent.Depth /= 2
		}

		recordBlitLevel(cmd, image, vk.ImageLayoutTransferSrcOptimal, level-1, prevExtent, image, level, nextExtent, layers, filter,
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferReadBit, Layout: vk.ImageLayoutTransferSrcOptimal, Enable: true})

		prevExtent = nextExtent
	}

	imageRangeBarrier(cmd, image, vk.ImageAspectColorBit, 0, levels, 0, layers,
		vk.PipelineStageTransferBit, vk.PipelineStageFragmentShaderBit,
		vk.AccessTransferReadBit, vk.AccessShaderReadBit,
		vk.ImageLayoutTransferSrcOptimal, finalLayout)
}

func createImage(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, opts UploadOptions, format vk.Format, levels uint32, usage vk.ImageUsageFlagBits, initialLayout vk.ImageLayout, tiling vk.ImageTiling) (vk.Image, *memory.ResourceMemory, gfxcore.Result) {
	flags := vk.ImageCreateFlags(0)
	if opts.ArrayLayers == 6 {
		flags = vk.ImageCreateFlags(vk.ImageCreateCubeCompatibleBit)
	}
	var image vk.Image
	ret := vk.CreateImage(device, &vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		Flags:         flags,
		ImageType:     opts.ImageType,
		Format:        format,
		Extent:        opts.Extent,
		MipLevels:     levels,
		ArrayLayers:   opts.ArrayLayers,
		Samples:       vk.SampleCount1Bit,
		Tiling:        tiling,
		Usage:         vk.ImageUsageFlags(usage),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: initialLayout,
	}, nil, &image)
	if gfxcore.IsError(ret) {
		return vk.NullImage, nil, gfxcore.FromVkResult(ret)
	}
	res, result := memory.BindImage(device, memProps, image, vk.MemoryPropertyFlagBits(vk.MemoryPropertyDeviceLocalBit), nil)
	if result != gfxcore.Success {
		res.Release(nil)
		return vk.NullImage, nil, result
	}
	return image, res, gfxcore.Success
}

func createOptimalImage(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, opts UploadOptions, format vk.Format, levels uint32, usage vk.ImageUsageFlagBits) (vk.Image, *memory.ResourceMemory, gfxcore.Result) {
	return createImage(device, memProps, opts, format, levels, usage, vk.ImageLayoutUndefined, vk.ImageTilingOptimal)
}

func createView(device vk.Device, image vk.Image, format vk.Format, viewType vk.ImageViewType, levels, layers uint32) (vk.ImageView, gfxcore.Result) {
	var view vk.ImageView
	ret := vk.CreateImageView(device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: viewType,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: levels,
			LayerCount: layers,
		},
	}, nil, &view)
	if gfxcore.IsError(ret) {
		return vk.NullImageView, gfxcore.FromVkResult(ret)
	}
	return view, gfxcore.Success
}

// UploadTexture runs the three-branch orchestrator against a staging
// buffer already populated with source-format pixel bytes. cmd must be a
// recording command buffer submitted and waited on by the caller.
func UploadTexture(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, cmd vk.CommandBuffer, staging *StagingBuffer, opts UploadOptions) (*Texture, gfxcore.Result) {
	levels := MipLevelsFor(opts.Extent, opts.GenerateMipmaps)
	usage := vk.ImageUsageTransferSrcBit | vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit

	if opts.SourceFormat == opts.TargetFormat {
		return uploadDirect(device, memProps, cmd, staging, opts, levels, usage)
	}

	meta := formats.Lookup(opts.SourceFormat)
	requiredSize := vk.DeviceSize(opts.Extent.Width) * vk.DeviceSize(opts.Extent.Height) * vk.DeviceSize(opts.Extent.Depth) * vk.DeviceSize(meta.PixelSize) * vk.DeviceSize(opts.ArrayLayers)
	if formats.AliasCompatible(opts.SourceFormat, opts.TargetFormat) && staging.CanAlias(requiredSize, vk.MemoryPropertyFlagBits(vk.MemoryPropertyHostVisibleBit)) {
		return uploadViaAliasedImage(device, memProps, cmd, staging, opts, levels, usage)
	}
	return uploadViaIntermediateImage(device, memProps, cmd, staging, opts, levels, usage)
}

// uploadDirect is orchestrator branch (a): source format equals target
// format, so the staging bytes go straight into the destination image.
func uploadDirect(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, cmd vk.CommandBuffer, staging *StagingBuffer, opts UploadOptions, levels uint32, usage vk.ImageUsageFlagBits) (*Texture, gfxcore.Result) {
	image, res, result := createOptimalImage(device, memProps, opts, opts.TargetFormat, levels, usage)
	if result != gfxcore.Success {
		return nil, result
	}

	finalLayout := vk.ImageLayoutShaderReadOnlyOptimal
	if levels > 1 {
		// generateMipmaps reads level 0 as a blit source, so its copy-in
		// must leave it in TransferSrcOptimal rather than the bare
		// TransferDstOptimal a single-level upload would stop at.
		recordCopyBufferToImage(cmd, staging.Handle(), image, opts.Extent, opts.ArrayLayers,
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferReadBit, Layout: vk.ImageLayoutTransferSrcOptimal, Enable: true})
		generateMipmaps(cmd, image, opts.Extent, levels, opts.ArrayLayers, pickFilter(opts), finalLayout)
	} else {
		recordCopyBufferToImage(cmd, staging.Handle(), image, opts.Extent, opts.ArrayLayers,
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			barrier{Stage: vk.PipelineStageFragmentShaderBit, Access: vk.AccessShaderReadBit, Layout: finalLayout, Enable: true})
	}

	return finishTexture(device, image, res, opts, levels, finalLayout)
}

// uploadViaAliasedImage is orchestrator branch (b): the staging buffer's
// own memory can be viewed as a preinitialized source-format image, so
// the conversion happens as a single blit rather than a CPU-side
// reformat.
func uploadViaAliasedImage(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, cmd vk.CommandBuffer, staging *StagingBuffer, opts UploadOptions, levels uint32, usage vk.ImageUsageFlagBits) (*Texture, gfxcore.Result) {
	aliased, aliasResult := CreateAliasedImage(device, staging, opts.SourceFormat, opts.Extent, opts.ArrayLayers)
	if aliasResult != gfxcore.Success {
		return uploadViaIntermediateImage(device, memProps, cmd, staging, opts, levels, usage)
	}
	defer vk.DestroyImage(device, aliased, nil)

	image, res, result := createOptimalImage(device, memProps, opts, opts.TargetFormat, levels, usage)
	if result != gfxcore.Success {
		return nil, result
	}

	finalLayout := vk.ImageLayoutShaderReadOnlyOptimal
	if levels > 1 {
		// Same TransferSrcOptimal hand-off as uploadDirect's multi-level
		// branch: generateMipmaps blits level 0 as its source.
		recordBlitLevel(cmd, aliased, vk.ImageLayoutPreinitialized, 0, opts.Extent, image, 0, opts.Extent, opts.ArrayLayers, pickFilter(opts),
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferReadBit, Layout: vk.ImageLayoutTransferSrcOptimal, Enable: true})
		generateMipmaps(cmd, image, opts.Extent, levels, opts.ArrayLayers, pickFilter(opts), finalLayout)
	} else {
		recordBlitLevel(cmd, aliased, vk.ImageLayoutPreinitialized, 0, opts.Extent, image, 0, opts.Extent, opts.ArrayLayers, pickFilter(opts),
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			barrier{Stage: vk.PipelineStageFragmentShaderBit, Access: vk.AccessShaderReadBit, Layout: finalLayout, Enable: true})
	}

	return finishTexture(device, image, res, opts, levels, finalLayout)
}

// uploadViaIntermediateImage is orchestrator branch (c): no aliasing is
// possible, so a temporary source-format image is built and mip-chained
// first, then every level is blitted one-by-one into the real
// destination.
func uploadViaIntermediateImage(device vk.Device, memProps vk.PhysicalDeviceMemoryProperties, cmd vk.CommandBuffer, staging *StagingBuffer, opts UploadOptions, levels uint32, usage vk.ImageUsageFlagBits) (*Texture, gfxcore.Result) {
	tempUsage := vk.ImageUsageTransferSrcBit | vk.ImageUsageTransferDstBit
	tempImage, tempRes, result := createOptimalImage(device, memProps, opts, opts.SourceFormat, levels, tempUsage)
	if result != gfxcore.Success {
		return nil, result
	}
	defer tempRes.Release(nil)

	if levels > 1 {
		// tempImage's own mip chain is generated in place before any
		// level is blitted onward, so level 0 needs the same
		// TransferSrcOptimal hand-off as the other two branches.
		recordCopyBufferToImage(cmd, staging.Handle(), tempImage, opts.Extent, opts.ArrayLayers,
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferReadBit, Layout: vk.ImageLayoutTransferSrcOptimal, Enable: true})
		generateMipmaps(cmd, tempImage, opts.Extent, levels, opts.ArrayLayers, pickFilter(opts), vk.ImageLayoutTransferSrcOptimal)
	} else {
		recordCopyBufferToImage(cmd, staging.Handle(), tempImage, opts.Extent, opts.ArrayLayers,
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferReadBit, Layout: vk.ImageLayoutTransferSrcOptimal, Enable: true})
	}

	image, res, result := createOptimalImage(device, memProps, opts, opts.TargetFormat, levels, usage)
	if result != gfxcore.Success {
		return nil, result
	}

	levelExtent := opts.Extent
	for level := uint32(0); level < levels; level++ {
		recordBlitLevel(cmd, tempImage, vk.ImageLayoutTransferSrcOptimal, level, levelExtent, image, level, levelExtent, opts.ArrayLayers, pickFilter(opts),
			barrier{Stage: vk.PipelineStageTransferBit, Access: vk.AccessTransferWriteBit, Layout: vk.ImageLayoutTransferDstOptimal, Enable: true},
			noBarrier())

		if levelExtent.Width > 1 {
			levelExtent.Width /= 2
		}
		if levelExtent.Height > 1 {
			levelExtent.Height /= 2
		}
		if levelExtent.Depth > 1 {
			levelExtent.Depth /= 2
		}
	}

	finalLayout := vk.ImageLayoutShaderReadOnlyOptimal
	imageRangeBarrier(cmd, image, vk.ImageAspectColorBit, 0, levels, 0, opts.ArrayLayers,
		vk.PipelineStageTransferBit, vk.PipelineStageFragmentShaderBit,
		vk.AccessTransferWriteBit, vk.AccessShaderReadBit,
		vk.ImageLayoutTransferDstOptimal, finalLayout)

	return finishTexture(device, image, res, opts, levels, finalLayout)
}

func pickFilter(opts UploadOptions) vk.Filter {
	if opts.Filter == 0 {
		return vk.FilterLinear
	}
	return opts.Filter
}

func finishTexture(device vk.Device, image vk.Image, res *memory.ResourceMemory, opts UploadOptions, levels uint32, layout vk.ImageLayout) (*Texture, gfxcore.Result) {
	viewType := opts.ViewType
	if viewType == 0 {
		viewType = vk.ImageViewType2d
	}
	view, result := createView(device, image, opts.TargetFormat, viewType, levels, opts.ArrayLayers)
	if result != gfxcore.Success {
		res.Release(nil)
		return nil, result
	}
	return &Texture{
		device: device,
		image:  image,
		view:   view,
		res:    res,
		format: opts.TargetFormat,
		extent: opts.Extent,
		layers: opts.ArrayLayers,
		levels: levels,
		layout: layout,
	}, gfxcore.Success
}

// Destroy releases the view, image, and memory.
func (t *Texture) Destroy() {
	vk.DestroyImageView(t.device, t.view, nil)
	t.res.Release(nil)
}
