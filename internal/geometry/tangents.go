package geometry

import "github.com/go-gl/mathgl/mgl32"

// ComputeTangents derives a per-vertex tangent basis for normal mapping and
// stores it in m.Tangents. The xyz components hold the tangent orthonormalized
// against the vertex normal, the w component holds the bitangent handedness
// (+1 or -1). Normals must already be populated.
//
// Triangles whose UVs span zero area divide by a zero determinant and leave
// non-finite tangents on their vertices; callers feeding meshes with
// degenerate UV layouts get what they asked for.
func ComputeTangents(m *Mesh) {
	tan := make([]mgl32.Vec3, len(m.Vertices))
	bitan := make([]mgl32.Vec3, len(m.Vertices))

	for t := 0; t+2 < len(m.Triangles); t += 3 {
		i1, i2, i3 := m.Triangles[t], m.Triangles[t+1], m.Triangles[t+2]
		e1 := m.Vertices[i2].Sub(m.Vertices[i1])
		e2 := m.Vertices[i3].Sub(m.Vertices[i1])
		d1 := m.UVs[i2].Sub(m.UVs[i1])
		d2 := m.UVs[i3].Sub(m.UVs[i1])

		r := 1 / (d1.X()*d2.Y() - d2.X()*d1.Y())
		tdir := e1.Mul(d2.Y()).Sub(e2.Mul(d1.Y())).Mul(r)
		bdir := e2.Mul(d1.X()).Sub(e1.Mul(d2.X())).Mul(r)

		for _, i := range [3]int32{i1, i2, i3} {
			tan[i] = tan[i].Add(tdir)
			bitan[i] = bitan[i].Add(bdir)
		}
	}

	m.Tangents = make([]mgl32.Vec4, len(m.Vertices))
	for i := range m.Vertices {
		n := m.Normals[i]
		t := tan[i]

		// Gram-Schmidt orthonormalize against the normal.
		ortho := t.Sub(n.Mul(n.Dot(t)))
		if ortho.Len() > 0 {
			ortho = ortho.Normalize()
		}

		w := float32(1)
		if n.Cross(ortho).Dot(bitan[i]) < 0 {
			w = -1
		}
		m.Tangents[i] = ortho.Vec4(w)
	}
}
