package gfxcore

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxlog"

	vk "github.com/vulkan-go/vulkan"
)

// SwapchainConfig is the caller-supplied preference set for swapchain
// creation.
type SwapchainConfig struct {
	Width, Height uint32
	Vsync         bool
}

// SwapchainCallbacks is the minimal collaborator Recreate needs in order
// to announce a rebuild. *context.Context satisfies it; gfxcore takes the
// interface rather than importing context directly, since context itself
// depends on gfxcore.
type SwapchainCallbacks interface {
	FireDestroySwapchain()
	FireCreateSwapchain()
}

// Swapchain is bound to a surface; it owns one view per image.
type Swapchain struct {
	device   *Device
	surface  vk.Surface
	handle   vk.Swapchain
	format   vk.Format
	colorSpace vk.ColorSpace
	extent   vk.Extent2D
	images   []vk.Image
	views    []vk.ImageView

	callbacks SwapchainCallbacks
}

func (s *Swapchain) Handle() vk.Swapchain   { return s.handle }
func (s *Swapchain) Format() vk.Format      { return s.format }
func (s *Swapchain) Extent() vk.Extent2D    { return s.extent }
func (s *Swapchain) Images() []vk.Image     { return s.images }
func (s *Swapchain) Views() []vk.ImageView  { return s.views }
func (s *Swapchain) ImageCount() int        { return len(s.images) }

// SetCallbacks installs the collaborator Recreate fires its
// destroy-swapchain/create-swapchain notifications through. Passing nil
// disables notification (the zero value already behaves this way).
func (s *Swapchain) SetCallbacks(cb SwapchainCallbacks) { s.callbacks = cb }

// CreateSwapchain builds a new swapchain for surface (extent clamp,
// format/present-mode/composite-alpha selection, required TransferDst
// usage).
func CreateSwapchain(device *Device, surface vk.Surface, cfg SwapchainConfig) (*Swapchain, Result) {
	return recreateSwapchainInto(device, surface, cfg, vk.NullSwapchain)
}

// Recreate waits for the graphics (and present, if distinct)
// queues to idle, fires destroy-swapchain then create-swapchain callbacks
// (registration order) around the rebuild, destroys the old image views,
// chains oldSwapchain into the new create info, and returns the new
// swapchain.
func (s *Swapchain) Recreate(cfg SwapchainConfig) Result {
	vk.QueueWaitIdle(s.device.GraphicsQueue())
	if s.device.HasSeparatePresentQueue() {
		vk.QueueWaitIdle(s.device.PresentQueue())
	}

	if s.callbacks != nil {
		s.callbacks.FireDestroySwapchain()
	}

	old := s.handle
	next, res := recreateSwapchainInto(s.device, s.surface, cfg, old)
	if res != Success {
		return res
	}
	s.destroyViews()
	vk.DestroySwapchain(s.device.Handle(), old, nil)

	callbacks := s.callbacks
	*s = *next
	s.callbacks = callbacks

	if s.callbacks != nil {
		s.callbacks.FireCreateSwapchain()
	}
	return Success
}

func recreateSwapchainInto(device *Device, surface vk.Surface, cfg SwapchainConfig, old vk.Swapchain) (*Swapchain, Result) {
	gpu := device.Physical().Handle()

	var caps vk.SurfaceCapabilities
	ret := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, surface, &caps)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	extent := clampExtent(cfg.Width, cfg.Height, caps)

	format, colorSpace, res := chooseSurfaceFormat(gpu, surface)
	if res != Success {
		return nil, res
	}

	presentMode := choosePresentMode(gpu, surface, cfg.Vsync)
	compositeAlpha := chooseCompositeAlpha(caps)

	imageCount := caps.MinImageCount
	if caps.MaxImageCount == 0 || caps.MaxImageCount > caps.MinImageCount {
		imageCount++
	}
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}

	usage := vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit)
	supported := vk.ImageUsageFlags(caps.SupportedUsageFlags)
	if supported&vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit) != 0 {
		usage |= vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit)
	}
	if supported&vk.ImageUsageFlags(vk.ImageUsageTransferDstBit) == 0 {
		return nil, ErrorFeatureNotPresent
	}
	usage |= vk.ImageUsageFlags(vk.ImageUsageTransferDstBit)

	var handle vk.Swapchain
	ret = vk.CreateSwapchain(device.Handle(), &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    imageCount,
		ImageFormat:      format,
		ImageColorSpace:  colorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       usage,
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   compositeAlpha,
		PresentMode:      presentMode,
		Clipped:          vk.True,
		OldSwapchain:     old,
	}, nil, &handle)
	if IsError(ret) {
		gfxlog.Errorf("vkCreateSwapchainKHR failed: %v", ret)
		return nil, FromVkResult(ret)
	}

	var imageCountOut uint32
	vk.GetSwapchainImages(device.Handle(), handle, &imageCountOut, nil)
	images := make([]vk.Image, imageCountOut)
	vk.GetSwapchainImages(device.Handle(), handle, &imageCountOut, images)

	views := make([]vk.ImageView, len(images))
	for i, img := range images {
		ret := vk.CreateImageView(device.Handle(), &vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    img,
			ViewType: vk.ImageViewType2d,
			Format:   format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}, nil, &views[i])
		if IsError(ret) {
			return nil, FromVkResult(ret)
		}
	}

	return &Swapchain{
		device:     device,
		surface:    surface,
		handle:     handle,
		format:     format,
		colorSpace: colorSpace,
		extent:     extent,
		images:     images,
		views:      views,
	}, Success
}

func (s *Swapchain) destroyViews() {
	for _, v := range s.views {
		vk.DestroyImageView(s.device.Handle(), v, nil)
	}
	s.views = nil
}

// Destroy tears down image views and the swapchain. Reversible phase 5 of
// the lifecycle contract.
func (s *Swapchain) Destroy() {
	s.destroyViews()
	if s.handle != vk.NullSwapchain {
		vk.DestroySwapchain(s.device.Handle(), s.handle, nil)
		s.handle = vk.NullSwapchain
	}
}

func clampExtent(width, height uint32, caps vk.SurfaceCapabilities) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	clamp := func(v, lo, hi uint32) uint32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return vk.Extent2D{
		Width:  clamp(width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// chooseSurfaceFormat tries R8G8B8A8Unorm+SrgbNonlinear, then
// B8G8R8A8Unorm+SrgbNonlinear, then the first available, logging a
// warning if no four-component UNORM matched.
func chooseSurfaceFormat(gpu vk.PhysicalDevice, surface vk.Surface) (vk.Format, vk.ColorSpace, Result) {
	var count uint32
	ret := vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &count, nil)
	if IsError(ret) {
		return 0, 0, FromVkResult(ret)
	}
	formats := make([]vk.SurfaceFormat, count)
	ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &count, formats)
	if IsError(ret) {
		return 0, 0, FromVkResult(ret)
	}
	if count == 0 {
		return 0, 0, ErrorFormatNotSupported
	}
	for i := range formats {
		formats[i].Deref()
	}

	preferred := []vk.Format{vk.FormatR8g8b8a8Unorm, vk.FormatB8g8r8a8Unorm}
	for _, want := range preferred {
		for _, f := range formats {
			if f.Format == want && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
				return f.Format, f.ColorSpace, Success
			}
		}
	}
	gfxlog.Warnf("no preferred four-component UNORM+sRGB surface format available, using first reported")
	return formats[0].Format, formats[0].ColorSpace, Success
}

// choosePresentMode prefers FIFO when vsync is requested; else Mailbox,
// falling back to FIFO.
func choosePresentMode(gpu vk.PhysicalDevice, surface vk.Surface, vsync bool) vk.PresentMode {
	if vsync {
		return vk.PresentModeFifo
	}
	var count uint32
	vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &count, nil)
	modes := make([]vk.PresentMode, count)
	vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &count, modes)
	for _, m := range modes {
		if m == vk.PresentModeMailbox {
			return vk.PresentModeMailbox
		}
	}
	return vk.PresentModeFifo
}

// chooseCompositeAlpha prefers Inherit, else the first of
// {Opaque, PreMultiplied, PostMultiplied} supported.
func chooseCompositeAlpha(caps vk.SurfaceCapabilities) vk.CompositeAlphaFlagBits {
	supported := vk.CompositeAlphaFlagBits(caps.SupportedCompositeAlpha)
	preference := []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaInheritBit,
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
	}
	for _, c := range preference {
		if supported&c != 0 {
			return c
		}
	}
	return vk.CompositeAlphaOpaqueBit
}

// AcquireResult is the outcome of AcquireNextImageLoop.
type AcquireResult struct {
	ImageIndex uint32
	Recreated  bool
}

// AcquireNextImageLoop wraps acquireNextImageKHR: on Suboptimal or
// OutOfDate it recreates the swapchain and retries; any other error is
// returned to the caller.
func (s *Swapchain) AcquireNextImageLoop(semaphore vk.Semaphore, fence vk.Fence, cfg SwapchainConfig) (AcquireResult, Result) {
	recreated := false
	for {
		var index uint32
		ret := vk.AcquireNextImage(s.device.Handle(), s.handle, vk.MaxUint64, semaphore, fence, &index)
		switch ret {
		case vk.Success:
			return AcquireResult{ImageIndex: index, Recreated: recreated}, Success
		case vk.ErrorOutOfDate, vk.Suboptimal:
			if res := s.Recreate(cfg); res != Success {
				return AcquireResult{}, res
			}
			recreated = true
			continue
		default:
			return AcquireResult{}, FromVkResult(ret)
		}
	}
}

// PresentLoop wraps vkQueuePresent: on Suboptimal or OutOfDate it
// recreates the swapchain and reports that a recreation occurred; the
// present itself is not issued again against the new swapchain. Any other
// error is returned to the caller.
func (s *Swapchain) PresentLoop(queue vk.Queue, waitSemaphores []vk.Semaphore, imageIndex uint32, cfg SwapchainConfig) (bool, Result) {
	info := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: uint32(len(waitSemaphores)),
		PWaitSemaphores:    waitSemaphores,
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.handle},
		PImageIndices:      []uint32{imageIndex},
	}
	ret := vk.QueuePresent(queue, &info)
	switch ret {
	case vk.Success:
		return false, Success
	case vk.ErrorOutOfDate, vk.Suboptimal:
		if res := s.Recreate(cfg); res != Success {
			return false, res
		}
		return true, Success
	default:
		return false, FromVkResult(ret)
	}
}
