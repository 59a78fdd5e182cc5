// Package handle provides a generic move-only wrapper around raw Vulkan
// handles, so every owning type (buffers, images, pipelines, command
// pools...) shares one release-once discipline instead of repeating the
// "if handle != null { destroy; handle = null }" idiom at each call site.
package handle

// ReleaseKind distinguishes the two shapes the Vulkan API uses to give a
// handle back: a handful of object kinds are destroyed directly, the rest
// (command buffers, descriptor sets) are freed back to the pool that
// allocated them.
type ReleaseKind int

const (
	// ReleaseDestroy calls vkDestroyXxx(device, handle, allocator).
	ReleaseDestroy ReleaseKind = iota
	// ReleaseFree calls vkFreeXxx(device, pool, count, &handle) against
	// the pool that allocated it.
	ReleaseFree
)

// Handle wraps a raw Vulkan object of type T with a release function bound
// at construction. It is move-only in spirit: copying a Handle after
// Release has been called on the original yields a zero handle, matching
// Go's lack of move semantics as closely as a value type can.
type Handle[T comparable] struct {
	value   T
	zero    T
	kind    ReleaseKind
	release func(T)
}

// Wrap binds value to a release callback. release is invoked at most once,
// from Release.
func Wrap[T comparable](value T, kind ReleaseKind, release func(T)) Handle[T] {
	return Handle[T]{value: value, kind: kind, release: release}
}

// Value returns the underlying handle, or the zero value if released or
// never assigned.
func (h *Handle[T]) Value() T { return h.value }

// Valid reports whether the handle still refers to a live object.
func (h *Handle[T]) Valid() bool { return h.value != h.zero }

// Kind reports whether Release calls a destroy or a free path.
func (h *Handle[T]) Kind() ReleaseKind { return h.kind }

// Release invokes the bound release function exactly once and clears the
// handle to its zero value. Safe to call repeatedly or on an invalid
// handle.
func (h *Handle[T]) Release() {
	if !h.Valid() || h.release == nil {
		return
	}
	h.release(h.value)
	h.value = h.zero
}

// Take transfers ownership out of h, leaving h zeroed, and returns a new
// Handle bound to the same release function. Mirrors a C++ move
// constructor: after Take, the source no longer releases anything.
func (h *Handle[T]) Take() Handle[T] {
	out := Handle[T]{value: h.value, kind: h.kind, release: h.release}
	h.value = h.zero
	h.release = nil
	return out
}
