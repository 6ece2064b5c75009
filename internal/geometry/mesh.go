package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh holds indexed triangle geometry for a scaled-space body.
// Triangles is a flat index list, three entries per face.
// Tangents are empty until ComputeTangents runs.
type Mesh struct {
	Vertices  []mgl32.Vec3
	UVs       []mgl32.Vec2
	Triangles []int32
	Normals   []mgl32.Vec3
	Tangents  []mgl32.Vec4
	Bounds    Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices:  append([]mgl32.Vec3(nil), m.Vertices...),
		UVs:       append([]mgl32.Vec2(nil), m.UVs...),
		Triangles: append([]int32(nil), m.Triangles...),
		Bounds:    m.Bounds,
	}
	if m.Normals != nil {
		c.Normals = append([]mgl32.Vec3(nil), m.Normals...)
	}
	if m.Tangents != nil {
		c.Tangents = append([]mgl32.Vec4(nil), m.Tangents...)
	}
	return c
}

// Validate checks the structural invariants: one UV per vertex, triangle
// index count divisible by three, every index inside the vertex range.
func (m *Mesh) Validate() error {
	if len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("geometry: %d uvs for %d vertices", len(m.UVs), len(m.Vertices))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("geometry: triangle index count %d not divisible by 3", len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || int(idx) >= len(m.Vertices) {
			return fmt.Errorf("geometry: triangle index %d at %d out of range (%d vertices)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// RecomputeNormals rebuilds per-vertex normals from scratch by accumulating
// area-weighted face normals and normalizing.
func (m *Mesh) RecomputeNormals() {
	normals := make([]mgl32.Vec3, len(m.Vertices))
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		i1, i2, i3 := m.Triangles[t], m.Triangles[t+1], m.Triangles[t+2]
		e1 := m.Vertices[i2].Sub(m.Vertices[i1])
		e2 := m.Vertices[i3].Sub(m.Vertices[i1])
		face := e1.Cross(e2)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
		normals[i3] = normals[i3].Add(face)
	}
	for i := range normals {
		if normals[i].Len() > 0 {
			normals[i] = normals[i].Normalize()
		}
	}
	m.Normals = normals
}

// RecomputeBounds rebuilds the axis-aligned bounding box from the vertex set.
func (m *Mesh) RecomputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	min, max := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for a := 0; a < 3; a++ {
			if v[a] < min[a] {
				min[a] = v[a]
			}
			if v[a] > max[a] {
				max[a] = v[a]
			}
		}
	}
	m.Bounds = Bounds{Min: min, Max: max}
}
