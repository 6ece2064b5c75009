package scaledspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr0721/Kopernicus/internal/geometry"
	"github.com/mr0721/Kopernicus/internal/modifier"
)

// flatMod adds a fixed offset to every sample.
type flatMod struct {
	offset float64
	err    error
}

func (m *flatMod) Kind() string          { return "flat" }
func (m *flatMod) Enabled() bool         { return true }
func (m *flatMod) Order() float64        { return 0 }
func (m *flatMod) PrepareForBatchBuild() {}

func (m *flatMod) BuildHeight(s *modifier.Sample) error {
	if m.err != nil {
		return m.err
	}
	s.Height += m.offset
	return nil
}

func TestSynthesizeEmptyPipelineShortCircuit(t *testing.T) {
	template := geometry.Geosphere(1)
	sy := NewSynthesizer(nil)

	const radius = 600_000.0
	mesh, err := sy.Synthesize(template, radius, ReferenceRadius, nil, nil)
	require.NoError(t, err)

	scale := float32(radius / ReferenceRadius)
	require.Len(t, mesh.Vertices, len(template.Vertices))
	for i, v := range template.Vertices {
		assert.Equal(t, v.Mul(scale), mesh.Vertices[i], "vertex %d", i)
	}
	assert.Equal(t, template.UVs, mesh.UVs)
	assert.Equal(t, template.Triangles, mesh.Triangles)
}

func TestSynthesizeDisplacesAlongDirection(t *testing.T) {
	template := geometry.Geosphere(1)
	sy := NewSynthesizer(nil)

	const radius = 600_000.0
	land := []modifier.Modifier{&flatMod{offset: 0}}
	mesh, err := sy.Synthesize(template, radius, ReferenceRadius, land, nil)
	require.NoError(t, err)

	// Height stays at the body radius, so every vertex lands on the
	// scaled-unit sphere.
	for i, v := range mesh.Vertices {
		assert.InDelta(t, ScaledUnitSize, float64(v.Len()), 1e-2, "vertex %d", i)
	}
	require.NoError(t, mesh.Validate())
	assert.Len(t, mesh.Normals, len(mesh.Vertices))
}

func TestSynthesizeDeterministic(t *testing.T) {
	template := geometry.Geosphere(2)
	sy := NewSynthesizer(nil)

	land := []modifier.Modifier{&flatMod{offset: 12_000}}
	a, err := sy.Synthesize(template, 600_000, ReferenceRadius, land, nil)
	require.NoError(t, err)
	b, err := sy.Synthesize(template, 600_000, ReferenceRadius, land, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Vertices, b.Vertices)
	assert.Equal(t, a.Normals, b.Normals)
}

func TestSynthesizeOceanRaisesSeaFloor(t *testing.T) {
	template := geometry.Geosphere(1)
	sy := NewSynthesizer(nil)

	const radius = 600_000.0
	land := []modifier.Modifier{&flatMod{offset: -5_000}}
	ocean := []modifier.Modifier{&flatMod{offset: 0}}
	mesh, err := sy.Synthesize(template, radius, ReferenceRadius, land, ocean)
	require.NoError(t, err)

	// The sunken land is everywhere below sea level, so the ocean height
	// wins and the surface sits on the sphere.
	for i, v := range mesh.Vertices {
		assert.InDelta(t, ScaledUnitSize, float64(v.Len()), 1e-2, "vertex %d", i)
	}
}

func TestSynthesizeContributorFailureIsFatal(t *testing.T) {
	template := geometry.Geosphere(1)
	sy := NewSynthesizer(nil)

	boom := errors.New("boom")
	land := []modifier.Modifier{&flatMod{err: boom}}
	mesh, err := sy.Synthesize(template, 600_000, ReferenceRadius, land, nil)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, mesh, "no partial mesh on failure")
}

func TestSynthesizeRejectsMissingTemplate(t *testing.T) {
	sy := NewSynthesizer(nil)
	_, err := sy.Synthesize(nil, 600_000, ReferenceRadius, nil, nil)
	assert.Error(t, err)

	_, err = sy.Synthesize(&geometry.Mesh{}, 600_000, ReferenceRadius, nil, nil)
	assert.Error(t, err)
}
