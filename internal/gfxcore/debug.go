package gfxcore

import (
	"unsafe"

	"github.com/baopinshui/NPGS-sub000/internal/gfxlog"

	vk "github.com/vulkan-go/vulkan"
)

// DebugMessenger wraps a VK_EXT_debug_report callback registration. It is
// optional: nil handle means no validation layer is attached.
type DebugMessenger struct {
	instance vk.Instance
	handle   vk.DebugReportCallback
}

// EnableDebugReporting registers a debug-report callback that routes every
// message through gfxlog at a severity matching its Vulkan flag bits.
// Grounded on vulkan-go-asche/platform.go's dbgCallbackFunc registration.
func EnableDebugReporting(instance *Instance) (*DebugMessenger, Result) {
	d := &DebugMessenger{instance: instance.handle}
	ret := vk.CreateDebugReportCallback(instance.handle, &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(
			vk.DebugReportErrorBit |
				vk.DebugReportWarningBit |
				vk.DebugReportPerformanceWarningBit,
		),
		PfnCallback: debugReportCallback,
	}, nil, &d.handle)
	if IsError(ret) {
		return nil, FromVkResult(ret)
	}
	return d, Success
}

// Destroy unregisters the callback. Safe to call on a nil-handle messenger.
func (d *DebugMessenger) Destroy() {
	if d == nil || d.handle == vk.NullDebugReportCallback {
		return
	}
	vk.DestroyDebugReportCallback(d.instance, d.handle, nil)
	d.handle = vk.NullDebugReportCallback
}

func debugReportCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		gfxlog.Errorf("[%s] code %d: %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		gfxlog.Warnf("[%s] code %d: %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		gfxlog.Warnf("[%s] performance: code %d: %s", pLayerPrefix, messageCode, pMessage)
	default:
		gfxlog.Warnf("[%s] code %d: %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
