package handle

import (
	"github.com/baopinshui/NPGS-sub000/internal/gfxcore"

	vk "github.com/vulkan-go/vulkan"
)

// Fence wraps a vk.Fence used to know when a batch of submitted commands
// has finished executing on the device.
type Fence struct {
	device vk.Device
	fence  Handle[vk.Fence]
}

// NewFence creates a fence, optionally pre-signaled so a first wait
// returns immediately.
func NewFence(device vk.Device, signaled bool) (*Fence, gfxcore.Result) {
	var flags vk.FenceCreateFlags
	if signaled {
		flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	var raw vk.Fence
	ret := vk.CreateFence(device, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: flags,
	}, nil, &raw)
	if gfxcore.IsError(ret) {
		return nil, gfxcore.FromVkResult(ret)
	}
	return &Fence{
		device: device,
		fence: Wrap(raw, ReleaseDestroy, func(f vk.Fence) {
			vk.DestroyFence(device, f, nil)
		}),
	}, gfxcore.Success
}

// Handle returns the underlying fence.
func (f *Fence) Handle() vk.Fence { return f.fence.Value() }

// Wait blocks until the fence is signaled or timeoutNs elapses.
// vk.MaxUint64 waits indefinitely.
func (f *Fence) Wait(timeoutNs uint64) gfxcore.Result {
	ret := vk.WaitForFences(f.device, 1, []vk.Fence{f.fence.Value()}, vk.True, timeoutNs)
	return gfxcore.FromVkResult(ret)
}

// Reset clears the fence back to the unsignaled state.
func (f *Fence) Reset() gfxcore.Result {
	ret := vk.ResetFences(f.device, 1, []vk.Fence{f.fence.Value()})
	return gfxcore.FromVkResult(ret)
}

// Destroy releases the fence.
func (f *Fence) Destroy() {
	f.fence.Release()
}
