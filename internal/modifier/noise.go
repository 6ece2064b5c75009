package modifier

import "math"

// Hash-based 3D value noise. Lattice values come from a SplitMix64-style
// integer hash so the field is stable for a given seed across runs and
// platforms, which the determinism guarantee of the mesh build depends on.

func hash3(x, y, z, seed int64) uint64 {
	v := uint64(x) + uint64(y)<<1 + uint64(z)<<2 + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func latticeValue3(x, y, z, seed int64) float64 {
	return float64(hash3(x, y, z, seed)&0xFFFFFFFF)/float64(0xFFFFFFFF)*2 - 1
}

// fade is the 6t^5 - 15t^4 + 10t^3 smoothstep used for lattice interpolation.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func valueNoise3(x, y, z float64, seed int64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	ix, iy, iz := int64(x0), int64(y0), int64(z0)
	c000 := latticeValue3(ix, iy, iz, seed)
	c100 := latticeValue3(ix+1, iy, iz, seed)
	c010 := latticeValue3(ix, iy+1, iz, seed)
	c110 := latticeValue3(ix+1, iy+1, iz, seed)
	c001 := latticeValue3(ix, iy, iz+1, seed)
	c101 := latticeValue3(ix+1, iy, iz+1, seed)
	c011 := latticeValue3(ix, iy+1, iz+1, seed)
	c111 := latticeValue3(ix+1, iy+1, iz+1, seed)

	return lerp(
		lerp(lerp(c000, c100, fx), lerp(c010, c110, fx), fy),
		lerp(lerp(c001, c101, fx), lerp(c011, c111, fx), fy),
		fz)
}

// octaveNoise3 sums octaves of value noise. Output stays in roughly [-1, 1]
// because the amplitude sum normalizes it.
func octaveNoise3(x, y, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	if persistence == 0 {
		persistence = 0.5
	}
	if lacunarity == 0 {
		lacunarity = 2
	}

	var total, amp, ampSum float64
	amp = 1
	freq := 1.0
	for o := 0; o < octaves; o++ {
		total += valueNoise3(x*freq, y*freq, z*freq, seed+int64(o)) * amp
		ampSum += amp
		amp *= persistence
		freq *= lacunarity
	}
	return total / ampSum
}
