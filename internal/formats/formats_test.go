package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestLookupKnownFormat(t *testing.T) {
	meta := Lookup(vk.FormatR8g8b8a8Unorm)
	assert.Equal(t, Metadata{Components: 4, BytesPerComponent: 1, PixelSize: 4, Class: ClassInteger}, meta)
}

func TestLookupUnknownFormatIsZeroValue(t *testing.T) {
	meta := Lookup(vk.FormatUndefined)
	assert.Equal(t, Metadata{}, meta)
}

func TestIsDepthStencilTrueOnlyForDepthStencilFormats(t *testing.T) {
	assert.True(t, IsDepthStencil(vk.FormatD24UnormS8Uint))
	assert.True(t, IsDepthStencil(vk.FormatD32Sfloat))
	assert.False(t, IsDepthStencil(vk.FormatR8g8b8a8Unorm))
}

func TestAliasCompatibleRequiresMatchingLayoutAndSrgbness(t *testing.T) {
	assert.True(t, AliasCompatible(vk.FormatR8g8b8a8Unorm, vk.FormatB8g8r8a8Unorm))
	assert.False(t, AliasCompatible(vk.FormatR8g8b8a8Unorm, vk.FormatR8g8b8a8Srgb))
	assert.False(t, AliasCompatible(vk.FormatR8g8b8a8Unorm, vk.FormatR32Sfloat))
}

func TestAliasCompatibleRejectsDepthStencil(t *testing.T) {
	assert.False(t, AliasCompatible(vk.FormatD32Sfloat, vk.FormatR32Sfloat))
	assert.False(t, AliasCompatible(vk.FormatR32Sfloat, vk.FormatD32Sfloat))
}

func TestAliasCompatibleIsReflexiveAndSymmetric(t *testing.T) {
	for _, f := range []vk.Format{vk.FormatR8g8b8a8Unorm, vk.FormatR32g32b32a32Sfloat, vk.FormatD32Sfloat} {
		assert.Equal(t, AliasCompatible(f, f), !IsDepthStencil(f), "reflexive except for depth/stencil formats")
	}

	pairs := [][2]vk.Format{
		{vk.FormatR8g8b8a8Unorm, vk.FormatB8g8r8a8Unorm},
		{vk.FormatR8g8b8a8Unorm, vk.FormatR32Sfloat},
		{vk.FormatD32Sfloat, vk.FormatR32Sfloat},
	}
	for _, p := range pairs {
		assert.Equal(t, AliasCompatible(p[0], p[1]), AliasCompatible(p[1], p[0]), "symmetric for %v", p)
	}
}
