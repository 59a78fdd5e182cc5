package gfxcore

import (
	vk "github.com/vulkan-go/vulkan"
)

// QueueIgnored is the sentinel queue-family index meaning "feature
// disabled for this device".
const QueueIgnored uint32 = ^uint32(0) / 2

// QueueFamilies is the cached <graphics, present, compute> triple for a
// physical device. A family selection attempted and failed is recorded as
// QueueIgnored so repeated calls short-circuit.
type QueueFamilies struct {
	Graphics uint32
	Present  uint32
	Compute  uint32
}

// DemandMode enumerates the three queue-family demand modes: graphics +
// present + compute, graphics + compute (no surface), or compute-only.
type DemandMode int

const (
	DemandGraphicsPresentCompute DemandMode = iota
	DemandGraphicsCompute
	DemandComputeOnly
)

// PhysicalDevice wraps an enumerated adapter with its cached property
// bundle.
type PhysicalDevice struct {
	handle     vk.PhysicalDevice
	properties vk.PhysicalDeviceProperties
	memory     vk.PhysicalDeviceMemoryProperties
	families   []vk.QueueFamilyProperties

	queueCache map[vkSurfaceKey]QueueFamilies
}

type vkSurfaceKey = vk.Surface

func (p *PhysicalDevice) Handle() vk.PhysicalDevice                    { return p.handle }
func (p *PhysicalDevice) Properties() vk.PhysicalDeviceProperties      { return p.properties }
func (p *PhysicalDevice) MemoryProperties() vk.PhysicalDeviceMemoryProperties { return p.memory }

// EnumeratePhysicalDevices lists and caches the property bundle of every
// adapter visible to instance.
func EnumeratePhysicalDevices(instance *Instance) ([]*PhysicalDevice, Result) {
	var count uint32
	ret := vk.EnumeratePhysicalDevices(instance.handle, &count, nil)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	handles := make([]vk.PhysicalDevice, count)
	ret = vk.EnumeratePhysicalDevices(instance.handle, &count, handles)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}

	devices := make([]*PhysicalDevice, 0, count)
	for _, h := range handles {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(h, &props)
		props.Deref()

		var memProps vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(h, &memProps)
		memProps.Deref()

		var famCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(h, &famCount, nil)
		families := make([]vk.QueueFamilyProperties, famCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(h, &famCount, families)
		for i := range families {
			families[i].Deref()
		}

		devices = append(devices, &PhysicalDevice{
			handle:     h,
			properties: props,
			memory:     memProps,
			families:   families,
			queueCache: make(map[vkSurfaceKey]QueueFamilies),
		})
	}
	return devices, Success
}

// SelectQueueFamilies runs a single-pass, tiered queue-family selection:
//
//   - prefer a family supporting all three requested capabilities,
//   - else a family supporting graphics+compute jointly,
//   - else assign each index the first family supporting that capability.
//
// Results are cached per surface (NullSurface for surface-less modes); a
// prior failure (QueueIgnored in any requested slot) short-circuits.
func (p *PhysicalDevice) SelectQueueFamilies(surface vk.Surface, mode DemandMode) (QueueFamilies, Result) {
	needGraphics := mode == DemandGraphicsPresentCompute || mode == DemandGraphicsCompute
	needPresent := mode == DemandGraphicsPresentCompute
	needCompute := true // all three demand modes require compute

	if cached, ok := p.queueCache[surface]; ok {
		if (needGraphics && cached.Graphics == QueueIgnored) ||
			(needCompute && cached.Compute == QueueIgnored) ||
			(needPresent && cached.Present == QueueIgnored) {
			return cached, ErrorFeatureNotPresent
		}
		return cached, Success
	}

	result := QueueFamilies{Graphics: QueueIgnored, Present: QueueIgnored, Compute: QueueIgnored}

	supportsPresent := func(i uint32) bool {
		if !needPresent || surface == vk.NullSurface {
			return false
		}
		var supported vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(p.handle, i, surface, &supported)
		return supported.B()
	}

	// Pass 1: a single family supporting everything requested.
	for i, fam := range p.families {
		idx := uint32(i)
		hasGraphics := !needGraphics || fam.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0
		hasCompute := !needCompute || fam.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0
		hasPresent := !needPresent || supportsPresent(idx)
		if hasGraphics && hasCompute && hasPresent {
			if needGraphics {
				result.Graphics = idx
			}
			if needCompute {
				result.Compute = idx
			}
			if needPresent {
				result.Present = idx
			}
			p.queueCache[surface] = result
			return result, Success
		}
	}

	// Pass 2: a family supporting graphics+compute jointly (present may
	// still need a distinct family).
	if needGraphics && needCompute {
		for i, fam := range p.families {
			idx := uint32(i)
			hasGraphics := fam.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0
			hasCompute := fam.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0
			if hasGraphics && hasCompute {
				result.Graphics = idx
				result.Compute = idx
				break
			}
		}
	}

	// Pass 3: assign each remaining index the first family supporting
	// that single capability.
	if needGraphics && result.Graphics == QueueIgnored {
		for i, fam := range p.families {
			if fam.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
				result.Graphics = uint32(i)
				break
			}
		}
	}
	if needCompute && result.Compute == QueueIgnored {
		for i, fam := range p.families {
			if fam.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0 {
				result.Compute = uint32(i)
				break
			}
		}
	}
	if needPresent && result.Present == QueueIgnored {
		for i := range p.families {
			idx := uint32(i)
			if supportsPresent(idx) {
				result.Present = idx
				break
			}
		}
	}

	p.queueCache[surface] = result

	if (needGraphics && result.Graphics == QueueIgnored) ||
		(needCompute && result.Compute == QueueIgnored) ||
		(needPresent && result.Present == QueueIgnored) {
		return result, ErrorFeatureNotPresent
	}
	return result, Success
}
