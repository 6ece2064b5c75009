package modifier

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

// Session owns a structural clone of a body's contributor configuration for
// the duration of one mesh build. The live tree is never touched: every
// contributor offering the Cloner capability is duplicated, and the clones are
// torn down when Close runs. Callers must Close on every exit path.
//
// A session must not be shared between concurrent builds; builds for
// different bodies each take their own session.
type Session struct {
	pipeline *Pipeline
	owned    []io.Closer
	closed   bool
}

// NewSession clones the contributor sets and builds the evaluation pipeline
// over the clones.
func NewSession(land, ocean []Modifier, blacklist map[string]struct{}) *Session {
	s := &Session{}
	landClones := s.cloneSet(land)
	var oceanClones []Modifier
	if ocean != nil {
		oceanClones = s.cloneSet(ocean)
	}
	s.pipeline = NewPipeline(landClones, oceanClones, blacklist)
	return s
}

func (s *Session) cloneSet(mods []Modifier) []Modifier {
	clones := make([]Modifier, len(mods))
	for i, m := range mods {
		if c, ok := m.(Cloner); ok {
			clone := c.CloneModifier()
			if closer, ok := clone.(io.Closer); ok {
				s.owned = append(s.owned, closer)
			}
			clones[i] = clone
			continue
		}
		clones[i] = m
	}
	return clones
}

// Height evaluates the cloned pipeline for one sample.
func (s *Session) Height(dir mgl64.Vec3, uv mgl64.Vec2, base float64) (float64, error) {
	return s.pipeline.Height(dir, uv, base)
}

// Close destroys the cloned contributors. Safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, c := range s.owned {
		c.Close()
	}
	s.owned = nil
	s.pipeline = nil
}
