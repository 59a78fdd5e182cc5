package context

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"
	"github.com/baopinshui/NPGS-sub000/internal/handle"

	vk "github.com/vulkan-go/vulkan"
)

// BuildPresentOwnershipRelease records, into a command buffer acquired
// from the present pool, the queue-family ownership-release barrier that
// must run before a present when graphics and present are distinct
// families under exclusive sharing. The image stays in PresentSrcKHR
// layout on both sides of the barrier -- only queue-family ownership
// transfers, from the graphics family to the present family.
//
// Grounded structurally on vulkan-go-asche/context.go's commented
// demo_build_image_ownership_cmd (same-layout-both-sides shape,
// srcQueueFamilyIndex = graphics / dstQueueFamilyIndex = present); the
// access and stage mask direction follows this engine's own barrier
// convention (ColorAttachmentWrite -> none, ColorAttachmentOutput ->
// BottomOfPipe) for a release barrier.
func (c *Context) BuildPresentOwnershipRelease(image vk.Image, swapchainImageIndex uint32) (vk.CommandBuffer, gfxcore.Result) {
	if c.presentPool == nil {
		return nil, gfxcore.ErrorFeatureNotPresent
	}

	buf, res := c.presentPool.Acquire()
	if res != gfxcore.Success {
		return nil, res
	}

	ret := vk.BeginCommandBuffer(buf, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	})
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
		DstAccessMask:       0,
		OldLayout:           vk.ImageLayoutPresentSrc,
		NewLayout:           vk.ImageLayoutPresentSrc,
		SrcQueueFamilyIndex: c.device.Families().Graphics,
		DstQueueFamilyIndex: c.device.Families().Present,
		Image:               image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}

	vk.CmdPipelineBarrier(buf,
		vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit),
		0,
		0, nil,
		0, nil,
		1, []vk.ImageMemoryBarrier{barrier})

	ret = vk.EndCommandBuffer(buf)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}

	return buf, gfxcore.Success
}

// SubmitPresentOwnershipRelease submits a previously-built ownership
// release buffer to the present queue, signaling signalSem once queue
// ownership has transferred so the present call can wait on it.
func (c *Context) SubmitPresentOwnershipRelease(buffer vk.CommandBuffer, waitSem, signalSem vk.Semaphore, fence *handle.Fence) gfxcore.Result {
	return c.SubmitSync(c.device.Families().Present, buffer, waitSem, signalSem, fence,
		vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit))
}
