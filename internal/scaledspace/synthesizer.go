package scaledspace

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/mr0721/Kopernicus/internal/geometry"
	"github.com/mr0721/Kopernicus/internal/modifier"
)

const (
	// ReferenceRadius is the body radius, in meters, the unit template
	// sphere stands for.
	ReferenceRadius = 6_000_000.0

	// ScaledUnitSize is the number of scaled-space units spanned by one
	// reference radius. Displacement converts meters to scaled units with
	// ScaledUnitSize / bodyRadius.
	ScaledUnitSize = 1000.0
)

// Synthesizer builds the long-distance stand-in mesh for a body by displacing
// the reference template through that body's contributor pipeline.
type Synthesizer struct {
	log       *zap.Logger
	blacklist map[string]struct{}
}

// NewSynthesizer returns a synthesizer using the default contributor-kind
// blacklist. A nil logger disables diagnostics.
func NewSynthesizer(log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{log: log, blacklist: modifier.DefaultKindBlacklist}
}

// Synthesize duplicates the unit template, scales it by bodyRadius over
// referenceRadius, and displaces every vertex by the contributor pipeline.
// With no contributors at all the scaled, undisplaced duplicate comes back
// as-is. Normals and bounds are recomputed from the final vertex set;
// tangents are the caller's job.
//
// The contributor sets are evaluated through a throwaway per-call clone, so
// concurrent calls for different bodies are safe. Calls for the same body
// must be serialized by the caller.
func (sy *Synthesizer) Synthesize(template *geometry.Mesh, bodyRadius, referenceRadius float64, land, ocean []modifier.Modifier) (*geometry.Mesh, error) {
	if template == nil || len(template.Vertices) == 0 {
		return nil, fmt.Errorf("scaledspace: reference template unavailable")
	}
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("scaledspace: reference template: %w", err)
	}

	mesh := template.Clone()
	scale := float32(bodyRadius / referenceRadius)
	for i := range mesh.Vertices {
		mesh.Vertices[i] = mesh.Vertices[i].Mul(scale)
	}

	if len(land) == 0 && len(ocean) == 0 {
		mesh.RecomputeBounds()
		sy.log.Debug("no contributors, returning scaled template",
			zap.Float64("radius", bodyRadius))
		return mesh, nil
	}

	session := modifier.NewSession(land, ocean, sy.blacklist)
	defer session.Close()

	metersToScaled := ScaledUnitSize / bodyRadius
	for i, v := range template.Vertices {
		dir := mgl64.Vec3{float64(v.X()), float64(v.Y()), float64(v.Z())}.Normalize()
		uv := mgl64.Vec2{float64(template.UVs[i].X()), float64(template.UVs[i].Y())}

		height, err := session.Height(dir, uv, bodyRadius)
		if err != nil {
			return nil, fmt.Errorf("scaledspace: vertex %d: %w", i, err)
		}

		d := height * metersToScaled
		mesh.Vertices[i] = mgl32.Vec3{
			float32(dir.X() * d),
			float32(dir.Y() * d),
			float32(dir.Z() * d),
		}
	}

	mesh.RecomputeNormals()
	mesh.RecomputeBounds()
	return mesh, nil
}
