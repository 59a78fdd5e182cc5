package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestMipLevelsForNoGenerateIsOne(t *testing.T) {
	levels := MipLevelsFor(vk.Extent3D{Width: 1024, Height: 1024, Depth: 1}, false)
	assert.Equal(t, uint32(1), levels)
}

func TestMipLevelsForPowerOfTwo(t *testing.T) {
	levels := MipLevelsFor(vk.Extent3D{Width: 256, Height: 256, Depth: 1}, true)
	assert.Equal(t, uint32(9), levels) // 256,128,64,32,16,8,4,2,1
}

func TestMipLevelsForBoundaryExtents(t *testing.T) {
	assert.Equal(t, uint32(1), MipLevelsFor(vk.Extent3D{Width: 1, Height: 1, Depth: 1}, true))
	assert.Equal(t, uint32(11), MipLevelsFor(vk.Extent3D{Width: 2048, Height: 1, Depth: 1}, true))
}

func TestMipLevelsForUsesLargestDimension(t *testing.T) {
	levels := MipLevelsFor(vk.Extent3D{Width: 4, Height: 1, Depth: 1}, true)
	assert.Equal(t, uint32(3), levels) // 4,2,1

	levels = MipLevelsFor(vk.Extent3D{Width: 1, Height: 1, Depth: 8}, true)
	assert.Equal(t, uint32(4), levels) // 8,4,2,1
}

func TestPickFilterDefaultsToLinear(t *testing.T) {
	assert.Equal(t, vk.FilterLinear, pickFilter(UploadOptions{}))
}

func TestPickFilterHonorsNonZeroChoice(t *testing.T) {
	assert.Equal(t, vk.Filter(1000015000), pickFilter(UploadOptions{Filter: 1000015000})) // VK_FILTER_CUBIC_IMG
}

func TestDefaultUploadOptionsPinsLinearFilter(t *testing.T) {
	assert.Equal(t, vk.FilterLinear, DefaultUploadOptions().Filter)
}
