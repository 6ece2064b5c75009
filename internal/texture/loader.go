package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"

	"github.com/mr0721/Kopernicus/internal/dds"
)

// Texture is one loaded asset. Exactly one of DDS or Image is set: DDS when
// the file is the binary container (payload kept raw), Image when a
// conventional encoded image was decoded by the fallback codecs.
type Texture struct {
	Path  string
	DDS   *dds.Texture
	Image *image.NRGBA
}

// Load reads an asset file and decodes it. DDS containers are detected by
// magic and decoded by the container decoder; anything else goes through the
// stdlib image registry (png, jpeg, tga).
func Load(path string) (*Texture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	if len(raw) >= 4 && binary.LittleEndian.Uint32(raw) == dds.Magic {
		tex, err := dds.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("texture: %s: %w", path, err)
		}
		return &Texture{Path: path, DDS: tex}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return &Texture{Path: path, Image: toNRGBA(img)}, nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha — draw and set alpha to 255
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := dst.PixOffset(x, y)
				dst.Pix[i+3] = 255
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
