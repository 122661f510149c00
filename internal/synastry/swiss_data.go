package synastry

import (
	"encoding/json"
	"strconv"
)

// AspectData is one geometric relationship between a planet in each chart.
// Orb is in degrees; zero means the orb was not supplied.
type AspectData struct {
	Type string  `json:"type"`
	A    string  `json:"a"`
	B    string  `json:"b"`
	Orb  float64 `json:"orb,omitempty"`
}

// valid reports whether the aspect carries the fields the extractor needs.
func (a AspectData) valid() bool {
	return a.Type != "" && a.A != "" && a.B != ""
}

// AspectList decodes leniently: entries of the wrong shape become zero-value
// aspects instead of failing the whole document. A value that is not an array
// decodes as a nil list.
type AspectList []AspectData

// UnmarshalJSON implements json.Unmarshaler.
func (l *AspectList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*l = nil
		return nil
	}

	out := make(AspectList, 0, len(raw))
	for _, entry := range raw {
		out = append(out, decodeAspect(entry))
	}
	*l = out
	return nil
}

func decodeAspect(data json.RawMessage) AspectData {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return AspectData{}
	}

	var aspect AspectData
	_ = json.Unmarshal(fields["type"], &aspect.Type)
	_ = json.Unmarshal(fields["a"], &aspect.A)
	_ = json.Unmarshal(fields["b"], &aspect.B)
	if err := json.Unmarshal(fields["orb"], &aspect.Orb); err != nil {
		// Some upstream payloads carry the orb as a numeric string.
		var s string
		if json.Unmarshal(fields["orb"], &s) == nil {
			aspect.Orb, _ = strconv.ParseFloat(s, 64)
		}
	}
	return aspect
}

// AspectBlock wraps the aspect pairs of a synastry block.
type AspectBlock struct {
	Pairs AspectList `json:"pairs"`
}

// SwissBlocks is the newer, block-structured payload layout.
type SwissBlocks struct {
	SynastryAspects *AspectBlock `json:"synastry_aspects,omitempty"`
}

// Placement is a planet's position in a natal chart.
type Placement struct {
	Sign string `json:"sign"`
}

// Placements maps planet name to placement. Arrays are accepted and keyed by
// index; malformed entries decode as empty placements.
type Placements map[string]Placement

// UnmarshalJSON implements json.Unmarshaler.
func (p *Placements) UnmarshalJSON(data []byte) error {
	var byName map[string]json.RawMessage
	if err := json.Unmarshal(data, &byName); err == nil {
		out := make(Placements, len(byName))
		for name, raw := range byName {
			out[name] = decodePlacement(raw)
		}
		*p = out
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(Placements, len(list))
		for i, raw := range list {
			out[strconv.Itoa(i)] = decodePlacement(raw)
		}
		*p = out
		return nil
	}

	*p = nil
	return nil
}

func decodePlacement(data json.RawMessage) Placement {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Placement{}
	}
	var placement Placement
	_ = json.Unmarshal(fields["sign"], &placement.Sign)
	return placement
}

// Chart holds one person's planet placements.
type Chart struct {
	Planets Placements `json:"planets"`
}

// SwissData is the raw chart-comparison payload produced by the ephemeris service.
// Aspects live under blocks.synastry_aspects.pairs (current layout) or
// synastry_aspects.pairs (legacy layout).
type SwissData struct {
	Blocks          *SwissBlocks `json:"blocks,omitempty"`
	SynastryAspects *AspectBlock `json:"synastry_aspects,omitempty"`
	Person1         *Chart       `json:"person1,omitempty"`
	Person2         *Chart       `json:"person2,omitempty"`
}

// UnmarshalJSON decodes each known section independently so a malformed
// section is dropped rather than failing the document. Only a payload that
// is not a JSON object is an error.
func (d *SwissData) UnmarshalJSON(data []byte) error {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return err
	}

	*d = SwissData{}
	if raw, ok := sections["blocks"]; ok {
		var blocks SwissBlocks
		if json.Unmarshal(raw, &blocks) == nil {
			d.Blocks = &blocks
		}
	}
	if raw, ok := sections["synastry_aspects"]; ok {
		var block AspectBlock
		if json.Unmarshal(raw, &block) == nil {
			d.SynastryAspects = &block
		}
	}
	if raw, ok := sections["person1"]; ok {
		var chart Chart
		if json.Unmarshal(raw, &chart) == nil {
			d.Person1 = &chart
		}
	}
	if raw, ok := sections["person2"]; ok {
		var chart Chart
		if json.Unmarshal(raw, &chart) == nil {
			d.Person2 = &chart
		}
	}
	return nil
}

// Aspects returns the aspect list, preferring the block layout whenever it is
// present (even if empty). Missing lists yield nil.
func (d *SwissData) Aspects() []AspectData {
	if d == nil {
		return nil
	}
	if d.Blocks != nil && d.Blocks.SynastryAspects != nil && d.Blocks.SynastryAspects.Pairs != nil {
		return d.Blocks.SynastryAspects.Pairs
	}
	if d.SynastryAspects != nil && d.SynastryAspects.Pairs != nil {
		return d.SynastryAspects.Pairs
	}
	return nil
}

// placements returns both persons' placement maps; missing charts are skipped.
func (d *SwissData) placements() []Placements {
	if d == nil {
		return nil
	}
	var out []Placements
	for _, chart := range []*Chart{d.Person1, d.Person2} {
		if chart != nil && chart.Planets != nil {
			out = append(out, chart.Planets)
		}
	}
	return out
}
