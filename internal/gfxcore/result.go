package gfxcore

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Result is the engine-wide fallible-call return code: every public
// constructor/operation returns one of these instead of panicking or
// propagating a Vulkan vk.Result directly.
type Result int

const (
	Success Result = iota
	ErrorFeatureNotPresent
	ErrorFormatNotSupported
	ErrorMemoryMapFailed
	ErrorDeviceLost
	ErrorSurfaceLost
	ErrorOutOfDate
	ErrorSuboptimal
	ErrorUnknown
)

func (r Result) String() string {
	switch r {
	case Success:
		return "Success"
	case ErrorFeatureNotPresent:
		return "FeatureNotPresent"
	case ErrorFormatNotSupported:
		return "FormatNotSupported"
	case ErrorMemoryMapFailed:
		return "MemoryMapFailed"
	case ErrorDeviceLost:
		return "DeviceLost"
	case ErrorSurfaceLost:
		return "SurfaceLost"
	case ErrorOutOfDate:
		return "OutOfDate"
	case ErrorSuboptimal:
		return "Suboptimal"
	default:
		return "Unknown"
	}
}

func (r Result) Error() string { return r.String() }

// IsError reports whether ret is a Vulkan failure code.
func IsError(ret vk.Result) bool {
	return ret != vk.Success
}

// FromVkResult converts the underlying API's result code into the engine's
// taxonomy, catching system errors at the boundary.
func FromVkResult(ret vk.Result) Result {
	switch ret {
	case vk.Success:
		return Success
	case vk.ErrorOutOfDate:
		return ErrorOutOfDate
	case vk.Suboptimal:
		return ErrorSuboptimal
	case vk.ErrorDeviceLost:
		return ErrorDeviceLost
	case vk.ErrorFeatureNotPresent:
		return ErrorFeatureNotPresent
	case vk.ErrorFormatNotSupported:
		return ErrorFormatNotSupported
	case vk.ErrorMemoryMapFailed:
		return ErrorMemoryMapFailed
	default:
		return ErrorUnknown
	}
}

// NewError wraps a raw vk.Result into a Go error, or nil on success.
// Grounded on vulkan-go-asche/errors.go's newError.
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	r := FromVkResult(ret)
	if r == ErrorUnknown {
		return fmt.Errorf("vulkan error: result code %d", ret)
	}
	return r
}
