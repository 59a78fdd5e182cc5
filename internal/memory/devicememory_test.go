package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func propsWith(types ...vk.MemoryType) vk.PhysicalDeviceMemoryProperties {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = uint32(len(types))
	for i, t := range types {
		props.MemoryTypes[i] = t
	}
	return props
}

func TestFindMemoryTypePicksLowestMatchingIndex(t *testing.T) {
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	props := propsWith(
		vk.MemoryType{PropertyFlags: deviceLocal},
		vk.MemoryType{PropertyFlags: hostVisible},
		vk.MemoryType{PropertyFlags: hostVisible},
	)

	idx, ok := FindMemoryType(props, 0b111, vk.MemoryPropertyHostVisibleBit)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), idx)
}

func TestFindMemoryTypeRespectsTypeBitsMask(t *testing.T) {
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	props := propsWith(
		vk.MemoryType{PropertyFlags: hostVisible},
		vk.MemoryType{PropertyFlags: hostVisible},
	)

	// typeBits excludes index 0, so the search should skip straight to 1.
	idx, ok := FindMemoryType(props, 0b10, vk.MemoryPropertyHostVisibleBit)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), idx)
}

func TestFindMemoryTypeNoMatchReturnsFalse(t *testing.T) {
	props := propsWith(vk.MemoryType{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)})
	_, ok := FindMemoryType(props, 0b1, vk.MemoryPropertyHostVisibleBit)
	assert.False(t, ok)
}

func TestAlignRangeRoundsOffsetDownAndSizeUp(t *testing.T) {
	offset, size := alignRange(10, 20, 16, 1000)
	assert.Equal(t, vk.DeviceSize(0), offset)
	assert.Equal(t, vk.DeviceSize(32), size)
}

func TestAlignRangeSmallUnalignedRangeRoundsToOneAtom(t *testing.T) {
	offset, size := alignRange(5, 3, 64, 1000)
	assert.Equal(t, vk.DeviceSize(0), offset)
	assert.Equal(t, vk.DeviceSize(64), size)
}

func TestAlignRangeZeroAtomSizeIsNoop(t *testing.T) {
	offset, size := alignRange(10, 20, 0, 1000)
	assert.Equal(t, vk.DeviceSize(10), offset)
	assert.Equal(t, vk.DeviceSize(20), size)
}

func TestAlignRangeAlreadyAlignedIsUnchanged(t *testing.T) {
	offset, size := alignRange(16, 32, 16, 1000)
	assert.Equal(t, vk.DeviceSize(16), offset)
	assert.Equal(t, vk.DeviceSize(32), size)
}

func TestAlignRangeClampsEndToAllocationSize(t *testing.T) {
	// offset=100 rounds down to 96; end=110 rounds up to 112, which
	// overshoots a 108-byte allocation and must clamp back to it.
	offset, size := alignRange(100, 10, 16, 108)
	assert.Equal(t, vk.DeviceSize(96), offset)
	assert.Equal(t, vk.DeviceSize(12), size)
}

func TestDeviceMemoryHostVisibilityFlags(t *testing.T) {
	m := &DeviceMemory{flags: vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)}
	assert.True(t, m.IsHostVisible())
	assert.True(t, m.IsHostCoherent())

	onlyDeviceLocal := &DeviceMemory{flags: vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)}
	assert.False(t, onlyDeviceLocal.IsHostVisible())
	assert.False(t, onlyDeviceLocal.IsHostCoherent())
}
