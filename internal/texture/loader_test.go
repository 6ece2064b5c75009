package texture

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr0721/Kopernicus/internal/dds"
)

// writePNG writes a 2x2 solid-color png.
func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

// writeDDS writes a minimal DXT1 container.
func writeDDS(t *testing.T, path string) {
	t.Helper()
	raw := make([]byte, 128, 128+8)
	le := binary.LittleEndian
	le.PutUint32(raw, dds.Magic)
	le.PutUint32(raw[4:], 124)
	le.PutUint32(raw[12:], 4) // height
	le.PutUint32(raw[16:], 4) // width
	pf := raw[4+72:]
	le.PutUint32(pf, 32)
	le.PutUint32(pf[4:], 0x4) // fourCC flag
	copy(pf[8:], "DXT1")
	raw = append(raw, make([]byte, 8)...)
	require.NoError(t, os.WriteFile(path, raw, 0644))
}

func TestLoadDDSContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kerbin.dds")
	writeDDS(t, path)

	tex, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, tex.DDS)
	assert.Nil(t, tex.Image)
	assert.Equal(t, dds.FormatDXT1, tex.DDS.Format)
}

func TestLoadFallbackImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mun.png")
	writePNG(t, path, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	tex, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, tex.Image)
	assert.Nil(t, tex.DDS)
	assert.Equal(t, uint8(10), tex.Image.Pix[0])
}

func TestLoadMalformedContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dds")
	// Right magic, garbage header.
	require.NoError(t, os.WriteFile(path, []byte("DDS garbage"), 0644))

	tex, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, tex)
}

func TestIndexPrefersContainer(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "kerbin.png"), color.NRGBA{A: 255})
	writeDDS(t, filepath.Join(dir, "Kerbin.dds"))

	idx := BuildIndex(dir)
	assert.Equal(t, 1, idx.Len())

	path, ok := idx.ResolvePath(`Terrain\maps\KERBIN.anything`)
	require.True(t, ok)
	assert.Equal(t, ".dds", filepath.Ext(path))
}

func TestCacheResolveCachesFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.dds"), []byte("DDS garbage"), 0644))

	c := NewCache(BuildIndex(dir), nil)
	assert.Nil(t, c.Resolve("bad"))
	assert.Nil(t, c.Resolve("bad"), "second lookup served from cache")
	assert.Nil(t, c.Resolve("missing"))
}
