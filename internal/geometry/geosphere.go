package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Geosphere builds the unit reference sphere the scaled-space synthesizer
// duplicates per body: a subdivided icosahedron with equirectangular UVs.
// Generation is fully deterministic for a given subdivision count.
func Geosphere(subdivisions int) *Mesh {
	// Icosahedron from three orthogonal golden rectangles.
	t := (1 + math32.Sqrt(5)) / 2
	verts := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	tris := []int32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for s := 0; s < subdivisions; s++ {
		midpoints := make(map[[2]int32]int32)
		next := make([]int32, 0, len(tris)*4)
		for i := 0; i+2 < len(tris); i += 3 {
			a, b, c := tris[i], tris[i+1], tris[i+2]
			ab := midpoint(&verts, midpoints, a, b)
			bc := midpoint(&verts, midpoints, b, c)
			ca := midpoint(&verts, midpoints, c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca)
		}
		tris = next
	}

	m := &Mesh{
		Vertices:  verts,
		UVs:       make([]mgl32.Vec2, len(verts)),
		Triangles: tris,
	}
	for i, v := range verts {
		m.UVs[i] = sphereUV(v)
	}
	m.RecomputeNormals()
	m.RecomputeBounds()
	return m
}

// midpoint returns the index of the normalized midpoint of edge (a, b),
// reusing a previously created vertex for the shared edge of the neighbor.
func midpoint(verts *[]mgl32.Vec3, cache map[[2]int32]int32, a, b int32) int32 {
	key := [2]int32{a, b}
	if a > b {
		key = [2]int32{b, a}
	}
	if idx, ok := cache[key]; ok {
		return idx
	}
	mid := (*verts)[a].Add((*verts)[b]).Mul(0.5).Normalize()
	idx := int32(len(*verts))
	*verts = append(*verts, mid)
	cache[key] = idx
	return idx
}

// sphereUV maps a unit direction to equirectangular texture coordinates.
func sphereUV(v mgl32.Vec3) mgl32.Vec2 {
	u := 0.5 + math32.Atan2(v.Z(), v.X())/(2*math32.Pi)
	w := 0.5 - math32.Asin(v.Y())/math32.Pi
	return mgl32.Vec2{u, w}
}
