package transfer

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/h2non/filetype"
	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
}

// DecodedImage is the host-side result of loading a common 2D image
// file: tightly packed pixel bytes in the requested format plus the
// extent needed to build an UploadOptions value.
type DecodedImage struct {
	Extent vk.Extent3D
	Pixels []byte
}

// LoadImage2D decodes a PNG/JPEG/BMP/TIFF byte stream (sniffed via its
// header, not its filename) and repacks it to RGBA8, the one format the
// standard decoders + draw.Draw can always produce regardless of the
// source's channel count.
//
// Grounded on the LoadImage/ImageData shape in
// other_examples/e732e21c_NOT-REAL-GAMES-vulkango__vala-vala.go (decode
// via the image package's format registry, convert to RGBA via
// draw.Draw), generalized with filetype sniffing instead of a fixed
// file extension and widened to register BMP/TIFF decoders too.
func LoadImage2D(data []byte) (*DecodedImage, error) {
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("transfer: not an image container")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("transfer: decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return &DecodedImage{
		Extent: vk.Extent3D{Width: uint32(bounds.Dx()), Height: uint32(bounds.Dy()), Depth: 1},
		Pixels: rgba.Pix,
	}, nil
}

// LoadImage2DFrom decodes from r instead of an in-memory buffer, for
// callers streaming from disk or an archive reader.
func LoadImage2DFrom(r io.Reader) (*DecodedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("transfer: read image stream: %w", err)
	}
	return LoadImage2D(data)
}
