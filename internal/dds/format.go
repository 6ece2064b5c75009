package dds

// Format enumerates the pixel layouts the decoder produces.
type Format int

const (
	FormatUnknown Format = iota

	// Block-compressed formats. Data holds 4x4 texel blocks.
	FormatDXT1
	FormatDXT3
	FormatDXT5

	// Uncompressed formats. Data holds row-major pixels.
	FormatRGB24    // 8-8-8
	FormatRGBA32   // 8-8-8-8
	FormatRGB565   // 5-6-5
	FormatARGB4444 // 4-4-4-4, alpha in the high nibble
	FormatRGBA4444 // 4-4-4-4, alpha in the low nibble
	FormatAlpha8   // single 8-bit alpha or luminance channel
)

var formatNames = map[Format]string{
	FormatUnknown:  "Unknown",
	FormatDXT1:     "DXT1",
	FormatDXT3:     "DXT3",
	FormatDXT5:     "DXT5",
	FormatRGB24:    "RGB24",
	FormatRGBA32:   "RGBA32",
	FormatRGB565:   "RGB565",
	FormatARGB4444: "ARGB4444",
	FormatRGBA4444: "RGBA4444",
	FormatAlpha8:   "Alpha8",
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "Unknown"
}

// Compressed reports whether the format is block-compressed.
func (f Format) Compressed() bool {
	return f == FormatDXT1 || f == FormatDXT3 || f == FormatDXT5
}

// BlockBytes returns the byte size of one 4x4 block for compressed formats,
// zero otherwise.
func (f Format) BlockBytes() int {
	switch f {
	case FormatDXT1:
		return 8
	case FormatDXT3, FormatDXT5:
		return 16
	}
	return 0
}

// BytesPerPixel returns the pixel stride for uncompressed formats, zero for
// compressed ones.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB24:
		return 3
	case FormatRGBA32:
		return 4
	case FormatRGB565, FormatARGB4444, FormatRGBA4444:
		return 2
	case FormatAlpha8:
		return 1
	}
	return 0
}
