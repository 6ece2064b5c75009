package modifier

import (
	"encoding/json"
	"fmt"
)

// factories maps the kind field of a body definition entry to a constructor
// returning that contributor with its defaults set. JSON decoding then
// overrides whatever fields the entry names.
var factories = map[string]func() Modifier{
	KindHeightOffset: func() Modifier { return &HeightOffset{base: defaults()} },
	KindHeightNoise: func() Modifier {
		return &HeightNoise{base: defaults(), Frequency: 1, Octaves: 4, Persistence: 0.5, Lacunarity: 2}
	},
	KindHeightMap:    func() Modifier { return &HeightMap{base: defaults()} },
	KindFlattenArea:  func() Modifier { return &FlattenArea{base: defaults()} },
	KindOceanOffset:  func() Modifier { return &OceanOffset{base: defaults()} },
	KindTileStreamer: func() Modifier { return &TileStreamer{base: defaults()} },
}

func defaults() base { return base{On: true} }

// Build instantiates one contributor from its JSON definition. The entry
// names its kind in a "type" field; the remaining fields configure it.
func Build(raw json.RawMessage) (Modifier, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("modifier: parse entry: %w", err)
	}
	factory, ok := factories[head.Type]
	if !ok {
		return nil, fmt.Errorf("modifier: unknown kind %q", head.Type)
	}
	m := factory()
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("modifier: parse %s entry: %w", head.Type, err)
	}
	return m, nil
}

// BuildSet instantiates a whole contributor list. A nil input stays nil so
// the caller can tell "no ocean" apart from "empty ocean".
func BuildSet(raws []json.RawMessage) ([]Modifier, error) {
	if raws == nil {
		return nil, nil
	}
	mods := make([]Modifier, 0, len(raws))
	for i, raw := range raws {
		m, err := Build(raw)
		if err != nil {
			return nil, fmt.Errorf("modifier: entry %d: %w", i, err)
		}
		mods = append(mods, m)
	}
	return mods, nil
}
