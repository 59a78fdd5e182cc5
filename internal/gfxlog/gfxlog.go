// Package gfxlog is the thin logging shim used across the engine core.
//
// Fallible-but-recoverable Vulkan conditions (missing extension, missing
// surface format) and failed create calls are logged through this shim,
// which writes with the standard library "log" package rather than a
// structured logging framework.
package gfxlog

import "log"

// Warnf logs a recoverable condition: something the caller can proceed
// past without failing the operation.
func Warnf(format string, args ...any) {
	log.Printf("vulkan warning: "+format, args...)
}

// Errorf logs an unrecoverable condition the caller still must handle by
// returning a Result.
func Errorf(format string, args ...any) {
	log.Printf("vulkan error: "+format, args...)
}
