package gfxcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestClampExtentUsesCurrentExtentWhenDefined(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: 800, Height: 600},
	}
	got := clampExtent(1920, 1080, caps)
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, got)
}

func TestClampExtentClampsToBoundsWhenCurrentExtentUndefined(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 1024, Height: 1024},
	}

	below := clampExtent(10, 10, caps)
	assert.Equal(t, vk.Extent2D{Width: 64, Height: 64}, below)

	above := clampExtent(4000, 4000, caps)
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 1024}, above)

	within := clampExtent(800, 600, caps)
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, within)
}

func TestChooseCompositeAlphaPrefersInherit(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaInheritBit | vk.CompositeAlphaOpaqueBit),
	}
	assert.Equal(t, vk.CompositeAlphaInheritBit, chooseCompositeAlpha(caps))
}

func TestChooseCompositeAlphaFallsBackToOpaque(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
	}
	assert.Equal(t, vk.CompositeAlphaOpaqueBit, chooseCompositeAlpha(caps))
}

func TestChooseCompositeAlphaDefaultsToOpaqueWhenNoneSupported(t *testing.T) {
	caps := vk.SurfaceCapabilities{}
	assert.Equal(t, vk.CompositeAlphaOpaqueBit, chooseCompositeAlpha(caps))
}
