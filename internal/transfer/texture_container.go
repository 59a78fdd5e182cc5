package transfer

import (
	"encoding/binary"
	"fmt"
	"strings"

	vk "github.com/vulkan-go/vulkan"
)

// ContainerKind identifies the compressed-texture container a byte blob
// was sniffed as.
type ContainerKind int

const (
	ContainerUnknown ContainerKind = iota
	ContainerDDS
	ContainerKTX
	ContainerKMG
)

// ContainerLevel is one mip level's byte range within the container's
// original data slice.
type ContainerLevel struct {
	Offset int
	Size   int
	Width  uint32
	Height uint32
}

// ContainerImage is a parsed, still-compressed texture: header fields
// plus a byte range per mip level. Pixels are never decoded -- the
// on-disk layout passes through unmodified to the GPU, matching a
// GLI-compatible loader's contract.
type ContainerImage struct {
	Kind       ContainerKind
	Format     vk.Format
	Width      uint32
	Height     uint32
	MipLevels  uint32
	ArrayLayers uint32
	Data       []byte
	Levels     []ContainerLevel
}

// DetectContainer classifies path's extension case-insensitively into
// the container kinds ParseDDS/ParseKTX/ParseKMG handle (PNG/JPEG are
// decoded by LoadImage2D instead).
func DetectContainer(path string) ContainerKind {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".dds"):
		return ContainerDDS
	case strings.HasSuffix(lower, ".ktx"):
		return ContainerKTX
	case strings.HasSuffix(lower, ".kmg"):
		return ContainerKMG
	default:
		return ContainerUnknown
	}
}

const (
	ddsMagic          = 0x20534444 // "DDS "
	ddsHeaderSize     = 124
	ddsPixelFormatSize = 32
	ddsFlagMipMapCount = 0x20000
	ddsFourCCDX10      = 0x30315844 // "DX10"
)

// ParseDDS parses the DDS_HEADER (and DX10 extension header, if present)
// directly against Microsoft's documented binary layout: a 4-byte magic,
// a 124-byte DDS_HEADER, and optionally a 20-byte DDS_HEADER_DXT10 when
// the pixel format FourCC is "DX10". Mip level byte ranges are computed
// assuming uncompressed or block-compressed linear layout (each level a
// quarter the byte size of the previous, floor-clamped to one 4x4 block
// for BC1/BC3) since no GLI-compatible parser exists in the
// ecosystem to delegate to.
func ParseDDS(data []byte) (*ContainerImage, error) {
	if len(data) < 4+ddsHeaderSize {
		return nil, fmt.Errorf("transfer: dds file too short")
	}
	if binary.LittleEndian.Uint32(data[0:4]) != ddsMagic {
		return nil, fmt.Errorf("transfer: not a dds file")
	}
	header := data[4 : 4+ddsHeaderSize]

	flags := binary.LittleEndian.Uint32(header[4:8])
	height := binary.LittleEndian.Uint32(header[8:12])
	width := binary.LittleEndian.Uint32(header[12:16])
	pitchOrLinearSize := binary.LittleEndian.Uint32(header[16:20])
	mipCount := uint32(1)
	if flags&ddsFlagMipMapCount != 0 {
		mipCount = binary.LittleEndian.Uint32(header[24:28])
		if mipCount == 0 {
			mipCount = 1
		}
	}

	pixelFormat := header[72:100]
	fourCC := binary.LittleEndian.Uint32(pixelFormat[4:8])

	offset := 4 + ddsHeaderSize
	format := vk.FormatUndefined
	if fourCC == ddsFourCCDX10 {
		if len(data) < offset+20 {
			return nil, fmt.Errorf("transfer: dds DX10 header truncated")
		}
		dxgiFormat := binary.LittleEndian.Uint32(data[offset : offset+4])
		format = dxgiFormatToVulkan(dxgiFormat)
		offset += 20
	} else {
		format = fourCCToVulkan(fourCC)
	}

	levels := make([]ContainerLevel, 0, mipCount)
	levelSize := int(pitchOrLinearSize)
	levelWidth, levelHeight := width, height
	cursor := offset
	for i := uint32(0); i < mipCount; i++ {
		if levelSize <= 0 {
			levelSize = blockCompressedSize(levelWidth, levelHeight, format)
		}
		if cursor+levelSize > len(data) {
			break
		}
		levels = append(levels, ContainerLevel{Offset: cursor, Size: levelSize, Width: levelWidth, Height: levelHeight})
		cursor += levelSize
		if levelWidth > 1 {
			levelWidth /= 2
		}
		if levelHeight > 1 {
			levelHeight /= 2
		}
		levelSize /= 4
		if format == vk.FormatBc1RgbaUnormBlock || format == vk.FormatBc3UnormBlock {
			if minSize := blockCompressedSize(1, 1, format); levelSize < minSize {
				levelSize = minSize
			}
		}
	}

	return &ContainerImage{
		Kind:        ContainerDDS,
		Format:      format,
		Width:       width,
		Height:      height,
		MipLevels:   uint32(len(levels)),
		ArrayLayers: 1,
		Data:        data,
		Levels:      levels,
	}, nil
}

func blockCompressedSize(width, height uint32, format vk.Format) int {
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	bytesPerBlock := 16
	if format == vk.FormatBc1RgbaUnormBlock || format == vk.FormatBc1RgbaSrgbBlock {
		bytesPerBlock = 8
	}
	if blocksWide == 0 {
		blocksWide = 1
	}
	if blocksHigh == 0 {
		blocksHigh = 1
	}
	return int(blocksWide) * int(blocksHigh) * bytesPerBlock
}

func fourCCToVulkan(fourCC uint32) vk.Format {
	switch fourCC {
	case 0x31545844: // "DXT1"
		return vk.FormatBc1RgbaUnormBlock
	case 0x35545844: // "DXT5"
		return vk.FormatBc3UnormBlock
	default:
		return vk.FormatUndefined
	}
}

func dxgiFormatToVulkan(dxgiFormat uint32) vk.Format {
	switch dxgiFormat {
	case 28: // DXGI_FORMAT_R8G8B8A8_UNORM
		return vk.FormatR8g8b8a8Unorm
	case 29: // DXGI_FORMAT_R8G8B8A8_UNORM_SRGB
		return vk.FormatR8g8b8a8Srgb
	case 10: // DXGI_FORMAT_R16G16B16A16_FLOAT
		return vk.FormatR16g16b16a16Sfloat
	default:
		return vk.FormatUndefined
	}
}

const ktxMagicLen = 12

var ktxMagic = [ktxMagicLen]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

// ParseKTX parses a KTX 1.1 header directly against the Khronos-documented
// layout: a 12-byte magic, then 13 little/big-endian uint32 fields
// (endianness itself given by the first of them), followed immediately
// by the key/value metadata block and image data. Only the fields the
// upload path needs are extracted; key/value pairs are skipped over by
// their declared total size.
func ParseKTX(data []byte) (*ContainerImage, error) {
	if len(data) < ktxMagicLen+13*4 {
		return nil, fmt.Errorf("transfer: ktx file too short")
	}
	for i, b := range ktxMagic {
		if data[i] != b {
			return nil, fmt.Errorf("transfer: not a ktx file")
		}
	}

	order := binary.ByteOrder(binary.LittleEndian)
	if binary.LittleEndian.Uint32(data[ktxMagicLen:ktxMagicLen+4]) != 0x04030201 {
		order = binary.BigEndian
	}

	fields := data[ktxMagicLen+4 : ktxMagicLen+4+12*4]
	glType := order.Uint32(fields[0:4])
	glBaseInternalFormat := order.Uint32(fields[16:20])
	width := order.Uint32(fields[20:24])
	height := order.Uint32(fields[24:28])
	mipLevels := order.Uint32(fields[40:44])
	if mipLevels == 0 {
		mipLevels = 1
	}
	arrayLayers := order.Uint32(fields[32:36])
	if arrayLayers == 0 {
		arrayLayers = 1
	}
	kvdByteSize := order.Uint32(fields[44:48])

	cursor := ktxMagicLen + 13*4 + int(kvdByteSize)
	levels := make([]ContainerLevel, 0, mipLevels)
	levelWidth, levelHeight := width, height
	for i := uint32(0); i < mipLevels; i++ {
		if cursor+4 > len(data) {
			break
		}
		levelSize := int(order.Uint32(data[cursor : cursor+4]))
		cursor += 4
		if cursor+levelSize > len(data) {
			break
		}
		levels = append(levels, ContainerLevel{Offset: cursor, Size: levelSize, Width: levelWidth, Height: levelHeight})
		cursor += levelSize
		if levelWidth > 1 {
			levelWidth /= 2
		}
		if levelHeight > 1 {
			levelHeight /= 2
		}
	}

	return &ContainerImage{
		Kind:        ContainerKTX,
		Format:      ktxGLFormatToVulkan(glType, glBaseInternalFormat),
		Width:       width,
		Height:      height,
		MipLevels:   uint32(len(levels)),
		ArrayLayers: arrayLayers,
		Data:        data,
		Levels:      levels,
	}, nil
}

// ParseKMG recognizes the container but does not parse it: the KMG
// format's layout is not publicly documented the way DDS and KTX are,
// so no existing loader or header spec was available to ground a real
// parser against.
func ParseKMG(data []byte) (*ContainerImage, error) {
	return nil, fmt.Errorf("transfer: kmg container parsing is not implemented")
}

func ktxGLFormatToVulkan(glType, glBaseInternalFormat uint32) vk.Format {
	const (
		glUnsignedByte = 0x1401
		glRGBA         = 0x1908
	)
	if glType == glUnsignedByte && glBaseInternalFormat == glRGBA {
		return vk.FormatR8g8b8a8Unorm
	}
	return vk.FormatUndefined
}
