// Package dds decodes the DDS texture container: a fixed 124-byte header
// (plus the 4-byte magic) followed by raw compressed or uncompressed pixel
// payload. Payload bytes are carried through verbatim; nothing is transcoded
// at decode time.
package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic is "DDS " little-endian.
const Magic = 0x20534444

// headerSize is the size of Header on the wire, excluding the magic.
const headerSize = 124

// Pixel-format flag bits.
const (
	pfAlphaPixels = 0x1
	pfAlpha       = 0x2
	pfFourCC      = 0x4
	pfRGB         = 0x40
	pfLuminance   = 0x20000
)

// FourCC compression codes.
const (
	fourCCDXT1 = 0x31545844 // "DXT1"
	fourCCDXT2 = 0x32545844 // "DXT2"
	fourCCDXT3 = 0x33545844 // "DXT3"
	fourCCDXT4 = 0x34545844 // "DXT4"
	fourCCDXT5 = 0x35545844 // "DXT5"
	fourCCDX10 = 0x30315844 // "DX10", extended-format marker
)

// dx10HeaderSize is the extended header following a DX10 fourCC.
const dx10HeaderSize = 20

var (
	// ErrBadMagic means the stream is not a DDS container at all.
	ErrBadMagic = errors.New("dds: bad magic")
	// ErrUnsupportedFourCC marks a recognized but unimplemented
	// compression variant (DXT2, DXT4, the DX10 extended format).
	ErrUnsupportedFourCC = errors.New("dds: unsupported compression variant")
	// ErrUnknownPixelFormat means no fourCC and no recognized channel
	// mask combination.
	ErrUnknownPixelFormat = errors.New("dds: unrecognized pixel format")
)

// Header is the fixed container header as laid out on disk, magic excluded.
type Header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       PixelFormatHeader
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// PixelFormatHeader is the 32-byte pixel-format block inside Header.
type PixelFormatHeader struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// Texture is a decoded container: typed dimensions plus the raw payload.
type Texture struct {
	Width       int
	Height      int
	MipMapCount int
	Format      Format
	Data        []byte // verbatim block or pixel payload, all mip levels
}

// LinearSize returns the byte size of the base mip level: block-aligned for
// compressed formats, width*height*stride otherwise.
func (t *Texture) LinearSize() int {
	if t.Format.Compressed() {
		bw := (t.Width + 3) / 4
		bh := (t.Height + 3) / 4
		if bw < 1 {
			bw = 1
		}
		if bh < 1 {
			bh = 1
		}
		return bw * bh * t.Format.BlockBytes()
	}
	return t.Width * t.Height * t.Format.BytesPerPixel()
}

// Decode parses a DDS container from raw bytes. On any failure no texture
// comes back, only the error; callers degrade to "no texture" and log it.
func Decode(raw []byte) (*Texture, error) {
	if len(raw) < 4+headerSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a header", ErrBadMagic, len(raw))
	}
	if binary.LittleEndian.Uint32(raw) != Magic {
		return nil, ErrBadMagic
	}

	var hdr Header
	if err := binary.Read(bytes.NewReader(raw[4:4+headerSize]), binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("dds: header: %w", err)
	}
	if hdr.Size != headerSize || hdr.PixelFormat.Size != 32 {
		return nil, fmt.Errorf("%w: header sizes %d/%d", ErrBadMagic, hdr.Size, hdr.PixelFormat.Size)
	}

	payloadOff := 4 + headerSize
	var format Format
	pf := hdr.PixelFormat

	switch {
	case pf.Flags&pfFourCC != 0:
		switch pf.FourCC {
		case fourCCDXT1:
			format = FormatDXT1
		case fourCCDXT3:
			format = FormatDXT3
		case fourCCDXT5:
			format = FormatDXT5
		case fourCCDXT2, fourCCDXT4:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFourCC, fourCCString(pf.FourCC))
		case fourCCDX10:
			// The extended header is part of the container, so a
			// truncated one is still a malformed file even though
			// the format itself is unimplemented.
			if len(raw) < payloadOff+dx10HeaderSize {
				return nil, fmt.Errorf("%w: truncated DX10 header", ErrBadMagic)
			}
			return nil, fmt.Errorf("%w: DX10 extended format", ErrUnsupportedFourCC)
		default:
			return nil, fmt.Errorf("%w: fourCC %s", ErrUnknownPixelFormat, fourCCString(pf.FourCC))
		}
	default:
		format = matchMasks(pf)
		if format == FormatUnknown {
			return nil, fmt.Errorf("%w: bits=%d r=%08x g=%08x b=%08x a=%08x flags=%08x",
				ErrUnknownPixelFormat, pf.RGBBitCount, pf.RBitMask, pf.GBitMask, pf.BBitMask, pf.ABitMask, pf.Flags)
		}
	}

	return &Texture{
		Width:       int(hdr.Width),
		Height:      int(hdr.Height),
		MipMapCount: int(hdr.MipMapCount),
		Format:      format,
		Data:        raw[payloadOff:],
	}, nil
}

// matchMasks resolves an uncompressed layout against the fixed table of
// recognized channel masks. First match wins.
func matchMasks(pf PixelFormatHeader) Format {
	type entry struct {
		bits       uint32
		r, g, b, a uint32
		format     Format
	}
	table := []entry{
		{32, 0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000, FormatRGBA32},
		{24, 0x000000ff, 0x0000ff00, 0x00ff0000, 0, FormatRGB24},
		{16, 0x0000f800, 0x000007e0, 0x0000001f, 0, FormatRGB565},
		{16, 0x00000f00, 0x000000f0, 0x0000000f, 0x0000f000, FormatARGB4444},
		{16, 0x0000f000, 0x00000f00, 0x000000f0, 0x0000000f, FormatRGBA4444},
	}
	for _, e := range table {
		if pf.RGBBitCount == e.bits && pf.RBitMask == e.r && pf.GBitMask == e.g &&
			pf.BBitMask == e.b && (e.a == 0 || pf.ABitMask == e.a) {
			return e.format
		}
	}
	// Single-channel 8-bit alpha or luminance.
	if pf.RGBBitCount == 8 && (pf.Flags&pfAlpha != 0 || pf.Flags&pfLuminance != 0) {
		return FormatAlpha8
	}
	return FormatUnknown
}

func fourCCString(c uint32) string {
	return string([]byte{byte(c), byte(c >> 8), byte(c >> 16), byte(c >> 24)})
}
