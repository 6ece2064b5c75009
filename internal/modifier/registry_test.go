package modifier

import (
	"encoding/json"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr0721/Kopernicus/internal/dds"
	"github.com/mr0721/Kopernicus/internal/texture"
)

func TestBuildHeightOffset(t *testing.T) {
	m, err := Build(json.RawMessage(`{"type":"HeightOffset","order":5,"offset":1200}`))
	require.NoError(t, err)

	assert.Equal(t, KindHeightOffset, m.Kind())
	assert.True(t, m.Enabled(), "contributors default to enabled")
	assert.Equal(t, 5.0, m.Order())

	s := Sample{Direction: testDir, UV: testUV, Height: 600000}
	require.NoError(t, m.BuildHeight(&s))
	assert.Equal(t, 601200.0, s.Height)
}

func TestBuildRespectsExplicitDisable(t *testing.T) {
	m, err := Build(json.RawMessage(`{"type":"HeightOffset","enabled":false}`))
	require.NoError(t, err)
	assert.False(t, m.Enabled())
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(json.RawMessage(`{"type":"LavaFlow"}`))
	assert.ErrorContains(t, err, "unknown kind")
}

func TestBuildSetPreservesNil(t *testing.T) {
	mods, err := BuildSet(nil)
	require.NoError(t, err)
	assert.Nil(t, mods, "nil raws mean no ocean set, not an empty one")

	mods, err = BuildSet([]json.RawMessage{})
	require.NoError(t, err)
	assert.NotNil(t, mods)
	assert.Empty(t, mods)
}

func TestHeightNoiseDeterministic(t *testing.T) {
	raw := json.RawMessage(`{"type":"HeightNoise","seed":42,"frequency":3,"deformity":8000,"octaves":5}`)
	a, err := Build(raw)
	require.NoError(t, err)
	b, err := Build(raw)
	require.NoError(t, err)

	for _, dir := range []struct{ x, y, z float64 }{
		{1, 0, 0}, {0.5, 0.5, 0.7071}, {-0.3, 0.9, -0.3},
	} {
		s1 := Sample{Direction: [3]float64{dir.x, dir.y, dir.z}, Height: 100000}
		s2 := s1
		require.NoError(t, a.BuildHeight(&s1))
		require.NoError(t, b.BuildHeight(&s2))
		assert.Equal(t, s1.Height, s2.Height)
		assert.NotEqual(t, 100000.0, s1.Height, "noise should displace")
	}
}

func TestHeightNoiseBounded(t *testing.T) {
	m, err := Build(json.RawMessage(`{"type":"HeightNoise","seed":7,"frequency":4,"deformity":1000}`))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		f := float64(i)
		s := Sample{Direction: [3]float64{f * 0.013, f * 0.007, f * 0.003}, Height: 0}
		require.NoError(t, m.BuildHeight(&s))
		assert.LessOrEqual(t, s.Height, 1000.0)
		assert.GreaterOrEqual(t, s.Height, -1000.0)
	}
}

func TestHeightMapMissingFileFailsBuild(t *testing.T) {
	m, err := Build(json.RawMessage(`{"type":"HeightMap","path":"/nonexistent/map.png","deformity":100}`))
	require.NoError(t, err, "construction succeeds, the load is deferred")

	s := Sample{Direction: testDir, UV: testUV, Height: 100}
	err = m.BuildHeight(&s)
	assert.Error(t, err, "a missing height map is a fatal contributor error")
}

// fixedResolver serves one texture for every name.
type fixedResolver struct {
	tex *texture.Texture
}

func (r *fixedResolver) Resolve(string) *texture.Texture { return r.tex }

func TestHeightMapLoadsThroughResolver(t *testing.T) {
	white := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range white.Pix {
		white.Pix[i] = 0xff
	}

	m, err := Build(json.RawMessage(`{"type":"HeightMap","path":"kerbin_height","deformity":1000}`))
	require.NoError(t, err)
	m.(TextureUser).SetTextureResolver(&fixedResolver{tex: &texture.Texture{Image: white}})

	s := Sample{Direction: testDir, UV: testUV, Height: 0}
	require.NoError(t, m.BuildHeight(&s))
	assert.Equal(t, 1000.0, s.Height, "white map displaces by the full deformity")
}

func TestHeightMapExpandsContainerFormats(t *testing.T) {
	// One solid-white block: both palette colors 0xffff, all indices 0.
	block := []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0}
	container := &dds.Texture{Width: 4, Height: 4, MipMapCount: 1, Format: dds.FormatDXT1, Data: block}

	m, err := Build(json.RawMessage(`{"type":"HeightMap","path":"mun_height","deformity":500}`))
	require.NoError(t, err)
	m.(TextureUser).SetTextureResolver(&fixedResolver{tex: &texture.Texture{DDS: container}})

	s := Sample{Direction: testDir, UV: testUV, Height: 0}
	require.NoError(t, m.BuildHeight(&s))
	assert.Equal(t, 500.0, s.Height)
}

func TestHeightMapUnresolvedNameFailsBuild(t *testing.T) {
	m, err := Build(json.RawMessage(`{"type":"HeightMap","path":"missing_map","deformity":100}`))
	require.NoError(t, err)
	m.(TextureUser).SetTextureResolver(&fixedResolver{tex: nil})

	s := Sample{Direction: testDir, UV: testUV, Height: 0}
	assert.Error(t, m.BuildHeight(&s))
}

func TestOceanOffsetAddsLevel(t *testing.T) {
	m, err := Build(json.RawMessage(`{"type":"OceanOffset","level":150}`))
	require.NoError(t, err)

	s := Sample{Direction: testDir, UV: testUV, Height: 100000}
	require.NoError(t, m.BuildHeight(&s))
	assert.Equal(t, 100150.0, s.Height)
}
