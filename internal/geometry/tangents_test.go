package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quad builds a unit quad in the xy plane facing +z with the given UV corners
// in vertex order (0,0) (1,0) (1,1) (0,1) remapped through remap.
func quad(remap func(mgl32.Vec2) mgl32.Vec2) *Mesh {
	m := &Mesh{
		Vertices: []mgl32.Vec3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		},
		UVs: []mgl32.Vec2{
			remap(mgl32.Vec2{0, 0}),
			remap(mgl32.Vec2{1, 0}),
			remap(mgl32.Vec2{1, 1}),
			remap(mgl32.Vec2{0, 1}),
		},
		Triangles: []int32{0, 1, 2, 0, 2, 3},
	}
	m.RecomputeNormals()
	return m
}

func TestTangentsMatchQuadAxes(t *testing.T) {
	m := quad(func(uv mgl32.Vec2) mgl32.Vec2 { return uv })
	ComputeTangents(m)
	require.Len(t, m.Tangents, 4)

	for i, tan := range m.Tangents {
		// UVs track x/y directly, so the tangent is +x and the
		// bitangent +y; right-handed basis.
		assert.InDelta(t, 1.0, float64(tan.X()), 1e-5, "tangent %d", i)
		assert.InDelta(t, 0.0, float64(tan.Y()), 1e-5, "tangent %d", i)
		assert.InDelta(t, 0.0, float64(tan.Z()), 1e-5, "tangent %d", i)
		assert.Equal(t, float32(1), tan.W(), "handedness %d", i)
	}
}

func TestTangentHandednessFlipsWithV(t *testing.T) {
	// Mirroring the v axis flips the bitangent, so the stored sign
	// flips too.
	m := quad(func(uv mgl32.Vec2) mgl32.Vec2 { return mgl32.Vec2{uv.X(), 1 - uv.Y()} })
	ComputeTangents(m)

	for i, tan := range m.Tangents {
		assert.Equal(t, float32(-1), tan.W(), "handedness %d", i)
	}
}

func TestTangentsOrthogonalToNormals(t *testing.T) {
	m := Geosphere(2)
	m.RecomputeNormals()
	ComputeTangents(m)
	require.Len(t, m.Tangents, len(m.Vertices))

	for i, tan := range m.Tangents {
		xyz := tan.Vec3()
		l := float64(xyz.Len())
		if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			// Vertices on triangles with degenerate UV area are a
			// documented numerical edge case.
			continue
		}
		assert.InDelta(t, 0.0, float64(xyz.Dot(m.Normals[i])), 1e-3, "tangent %d not orthogonal", i)
		assert.InDelta(t, 1.0, float64(xyz.Len()), 1e-3, "tangent %d not unit", i)
	}
}
