package gfxcore

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxlog"

	vk "github.com/vulkan-go/vulkan"
)

// Device is the logical device with up to three queues (graphics, present,
// compute) selected from the physical device's queue families.
type Device struct {
	handle     vk.Device
	physical   *PhysicalDevice
	families   QueueFamilies
	graphics   vk.Queue
	present    vk.Queue
	compute    vk.Queue
	extensions []string
}

func (d *Device) Handle() vk.Device          { return d.handle }
func (d *Device) Physical() *PhysicalDevice  { return d.physical }
func (d *Device) Families() QueueFamilies    { return d.families }
func (d *Device) GraphicsQueue() vk.Queue    { return d.graphics }
func (d *Device) PresentQueue() vk.Queue     { return d.present }
func (d *Device) ComputeQueue() vk.Queue     { return d.compute }

// HasSeparatePresentQueue reports whether graphics and present are
// distinct families.
func (d *Device) HasSeparatePresentQueue() bool {
	return d.families.Present != QueueIgnored &&
		d.families.Present != d.families.Graphics
}

// CreateDevice creates a logical device with queues for every family
// returned by families (duplicate indices are de-duplicated into a single
// vk.DeviceQueueCreateInfo, matching vulkan-go-asche/platform.go's
// separateQueue handling).
func CreateDevice(physical *PhysicalDevice, families QueueFamilies, requestedExtensions []string) (*Device, Result) {
	available, res := deviceExtensions(physical.handle)
	if res != Success {
		return nil, res
	}
	extensions := negotiate(requestedExtensions, available)

	seen := map[uint32]bool{}
	var queueInfos []vk.DeviceQueueCreateInfo
	addQueue := func(idx uint32) {
		if idx == QueueIgnored || seen[idx] {
			return
		}
		seen[idx] = true
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: idx,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}
	addQueue(families.Graphics)
	addQueue(families.Present)
	addQueue(families.Compute)

	var handle vk.Device
	ret := vk.CreateDevice(physical.handle, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: nullTerminated(extensions),
	}, nil, &handle)
	if IsError(ret) {
		gfxlog.Errorf("vkCreateDevice failed: %v", ret)
		return nil, FromVkResult(ret)
	}

	d := &Device{handle: handle, physical: physical, families: families, extensions: extensions}
	if families.Graphics != QueueIgnored {
		vk.GetDeviceQueue(handle, families.Graphics, 0, &d.graphics)
	}
	if families.Present != QueueIgnored {
		if families.Present == families.Graphics {
			d.present = d.graphics
		} else {
			vk.GetDeviceQueue(handle, families.Present, 0, &d.present)
		}
	}
	if families.Compute != QueueIgnored {
		if families.Compute == families.Graphics {
			d.compute = d.graphics
		} else {
			vk.GetDeviceQueue(handle, families.Compute, 0, &d.compute)
		}
	}
	return d, Success
}

// WaitIdle blocks until all queues on the device are idle. Used at
// teardown and before swapchain recreation.
func (d *Device) WaitIdle() Result {
	return FromVkResult(vk.DeviceWaitIdle(d.handle))
}

// Destroy tears down the logical device. One step of a reversible
// teardown sequence.
func (d *Device) Destroy() {
	if d.handle == nil {
		return
	}
	vk.DestroyDevice(d.handle, nil)
	d.handle = nil
}

func deviceExtensions(gpu vk.PhysicalDevice) ([]string, Result) {
	var count uint32
	ret := vk.EnumerateDeviceExtensionProperties(gpu, "", &count, nil)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	list := make([]vk.ExtensionProperties, count)
	ret = vk.EnumerateDeviceExtensionProperties(gpu, "", &count, list)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	names := make([]string, 0, count)
	for i := range list {
		list[i].Deref()
		names = append(names, vk.ToString(list[i].ExtensionName[:]))
	}
	return names, Success
}
