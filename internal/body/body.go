// Package body models the planetary system configuration tree the batch
// build runs over: one node per body, each carrying its radius and its land
// and ocean contributor sets.
package body

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mr0721/Kopernicus/internal/modifier"
)

// Body is one node of the system tree. Ocean is nil when the body defines no
// ocean at all; an empty slice still counts as an ocean set.
type Body struct {
	Name      string
	Radius    float64
	HomeWorld bool
	CacheFile string // optional explicit cache path; empty means derive from Name
	Land      []modifier.Modifier
	Ocean     []modifier.Modifier
	Children  []*Body
}

// bodyDef is the on-disk JSON shape of one body.
type bodyDef struct {
	Name      string            `json:"name"`
	Radius    float64           `json:"radius"`
	HomeWorld bool              `json:"homeWorld"`
	CacheFile string            `json:"cacheFile"`
	Land      []json.RawMessage `json:"land"`
	Ocean     []json.RawMessage `json:"ocean"`
	Children  []bodyDef         `json:"children"`
}

// Load reads a system definition file and instantiates the body tree,
// including every contributor named in it.
func Load(path string) (*Body, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("body: read %s: %w", path, err)
	}
	var def bodyDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("body: parse %s: %w", path, err)
	}
	root, err := build(def)
	if err != nil {
		return nil, fmt.Errorf("body: %s: %w", path, err)
	}
	return root, nil
}

func build(def bodyDef) (*Body, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("body without a name")
	}
	if def.Radius <= 0 {
		return nil, fmt.Errorf("body %s: radius %g", def.Name, def.Radius)
	}

	land, err := modifier.BuildSet(def.Land)
	if err != nil {
		return nil, fmt.Errorf("body %s: land: %w", def.Name, err)
	}
	ocean, err := modifier.BuildSet(def.Ocean)
	if err != nil {
		return nil, fmt.Errorf("body %s: ocean: %w", def.Name, err)
	}

	b := &Body{
		Name:      def.Name,
		Radius:    def.Radius,
		HomeWorld: def.HomeWorld,
		CacheFile: def.CacheFile,
		Land:      land,
		Ocean:     ocean,
	}
	for _, childDef := range def.Children {
		child, err := build(childDef)
		if err != nil {
			return nil, err
		}
		b.Children = append(b.Children, child)
	}
	return b, nil
}
