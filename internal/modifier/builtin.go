package modifier

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mr0721/Kopernicus/internal/dds"
	"github.com/mr0721/Kopernicus/internal/texture"
)

// Contributor kind names as they appear in body definition files.
const (
	KindHeightOffset = "HeightOffset"
	KindHeightNoise  = "HeightNoise"
	KindHeightMap    = "HeightMap"
	KindFlattenArea  = "FlattenArea"
	KindOceanOffset  = "OceanOffset"
	KindTileStreamer = "TileStreamer"
)

// base carries the fields every contributor shares.
type base struct {
	On       bool    `json:"enabled"`
	Priority float64 `json:"order"`
}

func (b *base) Enabled() bool         { return b.On }
func (b *base) Order() float64        { return b.Priority }
func (b *base) PrepareForBatchBuild() {}

// HeightOffset raises or lowers the whole surface by a constant.
type HeightOffset struct {
	base
	Offset float64 `json:"offset"`
}

func (m *HeightOffset) Kind() string { return KindHeightOffset }

func (m *HeightOffset) BuildHeight(s *Sample) error {
	s.Height += m.Offset
	return nil
}

// HeightNoise displaces the surface with fractal value noise sampled by
// direction, so the relief is seam-free across the UV wrap.
type HeightNoise struct {
	base
	Seed        int64   `json:"seed"`
	Frequency   float64 `json:"frequency"`
	Deformity   float64 `json:"deformity"`
	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`
}

func (m *HeightNoise) Kind() string { return KindHeightNoise }

func (m *HeightNoise) BuildHeight(s *Sample) error {
	p := s.Direction.Mul(m.Frequency)
	n := octaveNoise3(p.X(), p.Y(), p.Z(), m.Seed, m.Octaves, m.Persistence, m.Lacunarity)
	s.Height += n * m.Deformity
	return nil
}

// HeightMap displaces the surface by a grayscale map sampled at the vertex
// UV. The map is resolved through the shared texture resolver when one is
// wired in, so DDS containers and fallback images both work; without a
// resolver, Path is read straight from disk. The image is decoded once, on
// first use, and shared read-only after that; a missing or undecodable map
// fails the build.
type HeightMap struct {
	base
	Path      string  `json:"path"`
	Deformity float64 `json:"deformity"`

	resolver texture.Resolver
	once     sync.Once
	img      image.Image
	loadErr  error
}

func (m *HeightMap) Kind() string { return KindHeightMap }

func (m *HeightMap) SetTextureResolver(r texture.Resolver) { m.resolver = r }

func (m *HeightMap) BuildHeight(s *Sample) error {
	m.once.Do(func() { m.img, m.loadErr = m.load() })
	if m.loadErr != nil {
		return m.loadErr
	}
	s.Height += m.sample(s.UV) * m.Deformity
	return nil
}

func (m *HeightMap) load() (image.Image, error) {
	if m.resolver != nil {
		tex := m.resolver.Resolve(m.Path)
		if tex == nil {
			return nil, fmt.Errorf("modifier: height map %q not resolved", m.Path)
		}
		if tex.Image != nil {
			return tex.Image, nil
		}
		img, err := dds.ToImage(tex.DDS)
		if err != nil {
			return nil, fmt.Errorf("modifier: height map %q: %w", m.Path, err)
		}
		return img, nil
	}

	f, err := os.Open(m.Path)
	if err != nil {
		return nil, fmt.Errorf("modifier: open height map %s: %w", m.Path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("modifier: decode height map %s: %w", m.Path, err)
	}
	return img, nil
}

// sample reads the map as grayscale in [0,1] with nearest-pixel lookup and
// wrap-around addressing on both axes.
func (m *HeightMap) sample(uv mgl64.Vec2) float64 {
	b := m.img.Bounds()
	w, h := b.Dx(), b.Dy()
	px := int(uv.X()*float64(w)) % w
	py := int(uv.Y()*float64(h)) % h
	if px < 0 {
		px += w
	}
	if py < 0 {
		py += h
	}
	r, g, bl, _ := m.img.At(b.Min.X+px, b.Min.Y+py).RGBA()
	return float64(r+g+bl) / (3 * 0xffff)
}

// FlattenArea levels every vertex inside an angular cap to a fixed height.
// In the live game it only acts while the player edits the area, so the
// batch build has to switch it on explicitly; the flag lives on a per-build
// clone, never on the live configuration.
type FlattenArea struct {
	base
	Center [3]float64 `json:"center"`
	Angle  float64    `json:"angle"` // cap half-angle, degrees
	To     float64    `json:"to"`    // absolute height, meters

	batch bool
}

func (m *FlattenArea) Kind() string { return KindFlattenArea }

func (m *FlattenArea) PrepareForBatchBuild() { m.batch = true }

func (m *FlattenArea) CloneModifier() Modifier {
	c := *m
	c.batch = false
	return &c
}

func (m *FlattenArea) BuildHeight(s *Sample) error {
	if !m.batch {
		return nil
	}
	center := mgl64.Vec3(m.Center).Normalize()
	if s.Direction.Dot(center) >= math.Cos(mgl64.DegToRad(m.Angle)) {
		s.Height = m.To
	}
	return nil
}

// OceanOffset defines the sea surface for the ocean chain: the body radius
// plus a constant level.
type OceanOffset struct {
	base
	Level float64 `json:"level"`
}

func (m *OceanOffset) Kind() string { return KindOceanOffset }

func (m *OceanOffset) BuildHeight(s *Sample) error {
	s.Height += m.Level
	return nil
}

// TileStreamer pages high-detail terrain tiles in from disk during
// interactive flight. It has no batch-mode meaning and is blacklisted by
// default; BuildHeight is a no-op so a misconfigured pipeline still produces
// geometry instead of blocking on tile I/O.
type TileStreamer struct {
	base
	TileDir string `json:"tileDir"`
}

func (m *TileStreamer) Kind() string { return KindTileStreamer }

func (m *TileStreamer) BuildHeight(*Sample) error { return nil }
