package dds

import (
	"encoding/binary"
	"fmt"
	"image"
)

// ToImage expands the base mip level of a decoded texture into an NRGBA
// image. This is a preview-tool convenience; the decode path itself never
// transcodes.
func ToImage(t *Texture) (*image.NRGBA, error) {
	if len(t.Data) < t.LinearSize() {
		return nil, fmt.Errorf("dds: payload %d bytes, base level needs %d", len(t.Data), t.LinearSize())
	}
	switch t.Format {
	case FormatDXT1, FormatDXT3, FormatDXT5:
		return decompressBlocks(t), nil
	case FormatRGB24, FormatRGBA32, FormatRGB565, FormatARGB4444, FormatRGBA4444, FormatAlpha8:
		return expandPixels(t), nil
	}
	return nil, fmt.Errorf("dds: cannot expand format %s", t.Format)
}

func decompressBlocks(t *Texture) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	blockBytes := t.Format.BlockBytes()
	bw := (t.Width + 3) / 4

	for by := 0; by < (t.Height+3)/4; by++ {
		for bx := 0; bx < bw; bx++ {
			block := t.Data[(by*bw+bx)*blockBytes:]
			var texels [16][4]uint8
			switch t.Format {
			case FormatDXT1:
				decodeColorBlock(block, &texels, true)
			case FormatDXT3:
				decodeColorBlock(block[8:], &texels, false)
				decodeExplicitAlpha(block, &texels)
			case FormatDXT5:
				decodeColorBlock(block[8:], &texels, false)
				decodeInterpolatedAlpha(block, &texels)
			}
			for ty := 0; ty < 4; ty++ {
				for tx := 0; tx < 4; tx++ {
					x, y := bx*4+tx, by*4+ty
					if x >= t.Width || y >= t.Height {
						continue
					}
					o := img.PixOffset(x, y)
					p := texels[ty*4+tx]
					img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = p[0], p[1], p[2], p[3]
				}
			}
		}
	}
	return img
}

// decodeColorBlock expands the 8-byte 565 endpoint block shared by all DXT
// variants. oneBit enables the DXT1 punch-through alpha mode when the
// endpoints are stored low-to-high.
func decodeColorBlock(block []byte, texels *[16][4]uint8, oneBit bool) {
	c0 := binary.LittleEndian.Uint16(block)
	c1 := binary.LittleEndian.Uint16(block[2:])
	bits := binary.LittleEndian.Uint32(block[4:])

	var palette [4][4]uint8
	r0, g0, b0 := expand565(c0)
	r1, g1, b1 := expand565(c1)
	palette[0] = [4]uint8{r0, g0, b0, 255}
	palette[1] = [4]uint8{r1, g1, b1, 255}
	if !oneBit || c0 > c1 {
		palette[2] = [4]uint8{u8((2*int(r0) + int(r1)) / 3), u8((2*int(g0) + int(g1)) / 3), u8((2*int(b0) + int(b1)) / 3), 255}
		palette[3] = [4]uint8{u8((int(r0) + 2*int(r1)) / 3), u8((int(g0) + 2*int(g1)) / 3), u8((int(b0) + 2*int(b1)) / 3), 255}
	} else {
		palette[2] = [4]uint8{u8((int(r0) + int(r1)) / 2), u8((int(g0) + int(g1)) / 2), u8((int(b0) + int(b1)) / 2), 255}
		palette[3] = [4]uint8{0, 0, 0, 0}
	}

	for i := 0; i < 16; i++ {
		texels[i] = palette[(bits>>(2*i))&3]
	}
}

func decodeExplicitAlpha(block []byte, texels *[16][4]uint8) {
	for i := 0; i < 16; i++ {
		nibble := (block[i/2] >> (4 * uint(i%2))) & 0xf
		texels[i][3] = nibble | nibble<<4
	}
}

func decodeInterpolatedAlpha(block []byte, texels *[16][4]uint8) {
	a0, a1 := block[0], block[1]
	var palette [8]uint8
	palette[0], palette[1] = a0, a1
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			palette[i+1] = u8(((7-i)*int(a0) + i*int(a1)) / 7)
		}
	} else {
		for i := 1; i < 5; i++ {
			palette[i+1] = u8(((5-i)*int(a0) + i*int(a1)) / 5)
		}
		palette[6] = 0
		palette[7] = 255
	}

	bits := uint64(binary.LittleEndian.Uint16(block[2:])) |
		uint64(binary.LittleEndian.Uint32(block[4:]))<<16
	for i := 0; i < 16; i++ {
		texels[i][3] = palette[(bits>>(3*i))&7]
	}
}

func expandPixels(t *Texture) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	stride := t.Format.BytesPerPixel()

	for i := 0; i < t.Width*t.Height; i++ {
		p := t.Data[i*stride:]
		o := i * 4
		var r, g, b, a uint8
		switch t.Format {
		case FormatRGB24:
			r, g, b, a = p[0], p[1], p[2], 255
		case FormatRGBA32:
			r, g, b, a = p[0], p[1], p[2], p[3]
		case FormatRGB565:
			r, g, b = expand565(binary.LittleEndian.Uint16(p))
			a = 255
		case FormatARGB4444:
			v := binary.LittleEndian.Uint16(p)
			r, g, b, a = nib(v>>8), nib(v>>4), nib(v), nib(v>>12)
		case FormatRGBA4444:
			v := binary.LittleEndian.Uint16(p)
			r, g, b, a = nib(v>>12), nib(v>>8), nib(v>>4), nib(v)
		case FormatAlpha8:
			r, g, b, a = p[0], p[0], p[0], 255
		}
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = r, g, b, a
	}
	return img
}

func expand565(v uint16) (r, g, b uint8) {
	r5 := uint8(v >> 11 & 0x1f)
	g6 := uint8(v >> 5 & 0x3f)
	b5 := uint8(v & 0x1f)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

func nib(v uint16) uint8 {
	n := uint8(v & 0xf)
	return n | n<<4
}

func u8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
