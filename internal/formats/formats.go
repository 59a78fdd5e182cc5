// Package formats provides a metadata table keyed by Vulkan format code,
// used by the transfer package to size staging buffers and aliased
// images without hardcoding per-format arithmetic at every call site.
package formats

import vk "github.com/vulkan-go/vulkan"

// NumericClass buckets a format's component representation.
type NumericClass int

const (
	ClassOther NumericClass = iota
	ClassInteger
	ClassFloat
)

// Metadata describes one format's layout for linear-tiled CPU staging.
type Metadata struct {
	Components int
	BytesPerComponent int
	PixelSize  int
	Class      NumericClass
}

var table = map[vk.Format]Metadata{
	vk.FormatR8Unorm:            {1, 1, 1, ClassInteger},
	vk.FormatR8g8Unorm:          {2, 1, 2, ClassInteger},
	vk.FormatR8g8b8Unorm:        {3, 1, 3, ClassInteger},
	vk.FormatR8g8b8a8Unorm:      {4, 1, 4, ClassInteger},
	vk.FormatR8g8b8a8Srgb:       {4, 1, 4, ClassInteger},
	vk.FormatB8g8r8a8Unorm:      {4, 1, 4, ClassInteger},
	vk.FormatB8g8r8a8Srgb:       {4, 1, 4, ClassInteger},
	vk.FormatR16Sfloat:          {1, 2, 2, ClassFloat},
	vk.FormatR16g16Sfloat:       {2, 2, 4, ClassFloat},
	vk.FormatR16g16b16a16Sfloat: {4, 2, 8, ClassFloat},
	vk.FormatR32Sfloat:          {1, 4, 4, ClassFloat},
	vk.FormatR32g32Sfloat:       {2, 4, 8, ClassFloat},
	vk.FormatR32g32b32Sfloat:    {3, 4, 12, ClassFloat},
	vk.FormatR32g32b32a32Sfloat: {4, 4, 16, ClassFloat},
	vk.FormatR32Uint:            {1, 4, 4, ClassInteger},
	vk.FormatR32g32b32a32Uint:   {4, 4, 16, ClassInteger},

	// Depth-stencil formats are padded on upload, not tightly packed:
	// D16_UNORM_S8_UINT rounds to 4 bytes, D32_SFLOAT_S8_UINT to 8.
	vk.FormatD16UnormS8Uint:  {2, 0, 4, ClassOther},
	vk.FormatD32SfloatS8Uint: {2, 0, 8, ClassOther},
	vk.FormatD32Sfloat:       {1, 4, 4, ClassFloat},
	vk.FormatD24UnormS8Uint:  {2, 0, 4, ClassOther},
}

// Lookup returns format's metadata, or the all-zero Metadata for any
// format not in the table (including vk.FormatUndefined).
func Lookup(format vk.Format) Metadata {
	if meta, ok := table[format]; ok {
		return meta
	}
	return Metadata{}
}

// IsDepthStencil reports whether format is a depth or depth/stencil
// format, the case the upload orchestrator's aliasing predicate excludes.
func IsDepthStencil(format vk.Format) bool {
	switch format {
	case vk.FormatD16UnormS8Uint, vk.FormatD24UnormS8Uint, vk.FormatD32SfloatS8Uint, vk.FormatD32Sfloat:
		return true
	default:
		return false
	}
}

// AliasCompatible reports whether src can be CPU-staged as an aliased
// image and later blitted into dst: same component count, same
// per-component byte width, same sRGB-ness, and neither is
// depth/stencil.
func AliasCompatible(src, dst vk.Format) bool {
	if IsDepthStencil(src) || IsDepthStencil(dst) {
		return false
	}
	sm, dm := Lookup(src), Lookup(dst)
	if sm.Components != dm.Components || sm.BytesPerComponent != dm.BytesPerComponent {
		return false
	}
	return isSRGB(src) == isSRGB(dst)
}

func isSRGB(format vk.Format) bool {
	switch format {
	case vk.FormatR8g8b8a8Srgb, vk.FormatB8g8r8a8Srgb:
		return true
	default:
		return false
	}
}
