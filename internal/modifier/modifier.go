package modifier

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/mr0721/Kopernicus/internal/texture"
)

// Sample is one vertex sample threaded through a modifier chain. Direction is
// the unit vector from the body center, UV the template texture coordinate.
// Height is seeded with the body radius in meters and mutated in place by each
// modifier in order.
type Sample struct {
	Direction mgl64.Vec3
	UV        mgl64.Vec2
	Height    float64
}

// Modifier is the capability interface a height contributor exposes to the
// offline build. Contributors that normally only act during interactive
// area-flatten editing must activate themselves when PrepareForBatchBuild is
// called; the build never reaches into contributor state.
type Modifier interface {
	// Kind names the contributor type, used for blacklist filtering.
	Kind() string
	Enabled() bool
	Order() float64
	PrepareForBatchBuild()
	BuildHeight(s *Sample) error
}

// Cloner is an optional capability for contributors that carry per-build
// mutable state. The build session clones them so the live configuration tree
// is never disturbed. A contributor whose PrepareForBatchBuild mutates state
// must implement Cloner: non-cloning contributors are shared with the session
// as-is, so activation lands on the live object and is never undone.
type Cloner interface {
	CloneModifier() Modifier
}

// TextureUser is an optional capability for contributors that sample texture
// assets. The build wires the shared resolver in before bodies are processed
// so map lookups go through the indexed asset directory instead of raw file
// paths.
type TextureUser interface {
	SetTextureResolver(texture.Resolver)
}

// DefaultKindBlacklist lists contributor kinds that are meaningless in an
// offline batch build and are dropped before evaluation. TileStreamer pages
// terrain tiles in from disk during interactive flight and has no batch-mode
// behavior.
var DefaultKindBlacklist = map[string]struct{}{
	KindTileStreamer: {},
}
