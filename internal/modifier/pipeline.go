package modifier

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Pipeline evaluates an ordered land chain and an optional ocean chain for a
// body, merging the two heights with max. Construct one per build via
// NewPipeline; the filter and sort run once up front.
type Pipeline struct {
	land     []Modifier
	ocean    []Modifier
	hasOcean bool
}

// NewPipeline filters and orders the contributor sets. Disabled contributors
// and the kinds in blacklist are dropped; the survivors are sorted ascending
// by order with ties keeping their discovery position, then told to activate
// any batch-only behavior. A nil ocean slice means the body has no ocean; an
// empty non-nil slice still counts as an ocean set.
func NewPipeline(land, ocean []Modifier, blacklist map[string]struct{}) *Pipeline {
	p := &Pipeline{
		land:     prepareChain(land, blacklist),
		ocean:    prepareChain(ocean, blacklist),
		hasOcean: ocean != nil,
	}
	return p
}

func prepareChain(mods []Modifier, blacklist map[string]struct{}) []Modifier {
	chain := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		if !m.Enabled() {
			continue
		}
		if _, skip := blacklist[m.Kind()]; skip {
			continue
		}
		chain = append(chain, m)
	}
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Order() < chain[j].Order()
	})
	for _, m := range chain {
		m.PrepareForBatchBuild()
	}
	return chain
}

// Height runs the land chain, and the ocean chain when the body has one, for
// a single vertex sample. Any contributor error aborts the whole evaluation.
func (p *Pipeline) Height(dir mgl64.Vec3, uv mgl64.Vec2, base float64) (float64, error) {
	land, err := runChain(p.land, dir, uv, base)
	if err != nil {
		return 0, err
	}
	if !p.hasOcean {
		return land, nil
	}
	ocean, err := runChain(p.ocean, dir, uv, base)
	if err != nil {
		return 0, err
	}
	if ocean > land {
		return ocean, nil
	}
	return land, nil
}

func runChain(chain []Modifier, dir mgl64.Vec3, uv mgl64.Vec2, base float64) (float64, error) {
	s := Sample{Direction: dir, UV: uv, Height: base}
	for _, m := range chain {
		if err := m.BuildHeight(&s); err != nil {
			return 0, fmt.Errorf("modifier: %s: %w", m.Kind(), err)
		}
	}
	return s.Height, nil
}
