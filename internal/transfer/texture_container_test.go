package transfer

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestDetectContainerByExtension(t *testing.T) {
	assert.Equal(t, ContainerDDS, DetectContainer("skybox.DDS"))
	assert.Equal(t, ContainerKTX, DetectContainer("terrain.ktx"))
	assert.Equal(t, ContainerKMG, DetectContainer("probe.kmg"))
	assert.Equal(t, ContainerUnknown, DetectContainer("icon.png"))
}

// buildMinimalDDS assembles a DDS_HEADER with just the fields ParseDDS
// reads, a single BC1 mip level with no stored pitch/linear size so the
// block-compressed size path computes it.
func buildMinimalDDS(width, height uint32, fourCC uint32) []byte {
	buf := make([]byte, 4+ddsHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], ddsMagic)
	header := buf[4 : 4+ddsHeaderSize]
	binary.LittleEndian.PutUint32(header[8:12], height)
	binary.LittleEndian.PutUint32(header[12:16], width)
	binary.LittleEndian.PutUint32(header[72+4:72+8], fourCC)

	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	levelSize := int(blocksWide) * int(blocksHigh) * 8
	return append(buf, make([]byte, levelSize)...)
}

func TestParseDDSReadsBC1Level(t *testing.T) {
	data := buildMinimalDDS(8, 8, 0x31545844)
	img, err := ParseDDS(data)
	assert.NoError(t, err)
	assert.Equal(t, ContainerDDS, img.Kind)
	assert.Equal(t, vk.FormatBc1RgbaUnormBlock, img.Format)
	assert.Equal(t, uint32(8), img.Width)
	assert.Equal(t, uint32(8), img.Height)
	assert.Equal(t, uint32(1), img.MipLevels)
	assert.Equal(t, 32, img.Levels[0].Size)
}

func TestParseDDSRejectsBadMagic(t *testing.T) {
	data := make([]byte, 4+ddsHeaderSize)
	_, err := ParseDDS(data)
	assert.Error(t, err)
}

func TestParseDDSRejectsTruncatedHeader(t *testing.T) {
	_, err := ParseDDS(make([]byte, 8))
	assert.Error(t, err)
}

func TestFourCCToVulkanMapsDXT1AndDXT5(t *testing.T) {
	assert.Equal(t, vk.FormatBc1RgbaUnormBlock, fourCCToVulkan(0x31545844))
	assert.Equal(t, vk.FormatBc3UnormBlock, fourCCToVulkan(0x35545844))
	assert.Equal(t, vk.FormatUndefined, fourCCToVulkan(0))
}

func TestDxgiFormatToVulkanMapsKnownCodes(t *testing.T) {
	assert.Equal(t, vk.FormatR8g8b8a8Unorm, dxgiFormatToVulkan(28))
	assert.Equal(t, vk.FormatR8g8b8a8Srgb, dxgiFormatToVulkan(29))
	assert.Equal(t, vk.FormatUndefined, dxgiFormatToVulkan(9999))
}

func TestBlockCompressedSizeRoundsUpToFullBlocks(t *testing.T) {
	assert.Equal(t, 8, blockCompressedSize(1, 1, vk.FormatBc1RgbaUnormBlock))
	assert.Equal(t, 16, blockCompressedSize(1, 1, vk.FormatBc3UnormBlock))
	assert.Equal(t, 32, blockCompressedSize(8, 8, vk.FormatBc1RgbaUnormBlock))
}
