// Package synastry turns synastry chart data into a connection profile: a score,
// a named archetype, a headline, insight prose and keywords.
//
// The pipeline is deterministic and free of I/O. Every exported function is safe
// for concurrent use; the archetype and insight libraries are read-only after
// package initialization.
package synastry

import (
	"bytes"
	"encoding/json"
)

// ThemeName identifies one of the fixed semantic themes.
type ThemeName string

// Theme names, in rule evaluation order. ThemeBalanced is the fallback.
const (
	ThemeEmotional        ThemeName = "emotional"
	ThemeMental           ThemeName = "mental"
	ThemeTransformational ThemeName = "transformational"
	ThemeKarmic           ThemeName = "karmic"
	ThemeDynamic          ThemeName = "dynamic"
	ThemeGrowth           ThemeName = "growth"
	ThemeStable           ThemeName = "stable"
	ThemeBalanced         ThemeName = "balanced"
)

// ThemeNames lists every theme in library order.
var ThemeNames = []ThemeName{
	ThemeEmotional,
	ThemeMental,
	ThemeTransformational,
	ThemeKarmic,
	ThemeDynamic,
	ThemeGrowth,
	ThemeStable,
	ThemeBalanced,
}

// Element is a zodiac element. The zero value means "none" and encodes as JSON null.
type Element string

// Elements in tie-breaking order.
const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

var elementOrder = []Element{ElementFire, ElementEarth, ElementAir, ElementWater}

// MarshalJSON encodes the empty element as null.
func (e Element) MarshalJSON() ([]byte, error) {
	return marshalNullableString(string(e))
}

// MarshalYAML encodes the empty element as null.
func (e Element) MarshalYAML() (any, error) {
	return nullableYAML(string(e)), nil
}

// UnmarshalJSON decodes null as the empty element.
func (e *Element) UnmarshalJSON(data []byte) error {
	s, err := unmarshalNullableString(data)
	*e = Element(s)
	return err
}

// Mode is a zodiac modality. The zero value means "none" and encodes as JSON null.
type Mode string

// Modes in tie-breaking order.
const (
	ModeCardinal Mode = "cardinal"
	ModeFixed    Mode = "fixed"
	ModeMutable  Mode = "mutable"
)

var modeOrder = []Mode{ModeCardinal, ModeFixed, ModeMutable}

// MarshalJSON encodes the empty mode as null.
func (m Mode) MarshalJSON() ([]byte, error) {
	return marshalNullableString(string(m))
}

// MarshalYAML encodes the empty mode as null.
func (m Mode) MarshalYAML() (any, error) {
	return nullableYAML(string(m)), nil
}

// UnmarshalJSON decodes null as the empty mode.
func (m *Mode) UnmarshalJSON(data []byte) error {
	s, err := unmarshalNullableString(data)
	*m = Mode(s)
	return err
}

func marshalNullableString(s string) ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

func nullableYAML(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func unmarshalNullableString(data []byte) (string, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

// FeatureSet is the flat signal record produced by ExtractFeatures.
type FeatureSet struct {
	TotalAspects       int `json:"totalAspects" yaml:"totalAspects"`
	HarmoniousAspects  int `json:"harmoniousAspects" yaml:"harmoniousAspects"`
	ChallengingAspects int `json:"challengingAspects" yaml:"challengingAspects"`
	NeutralAspects     int `json:"neutralAspects" yaml:"neutralAspects"`

	MoonVenusLinks int `json:"moonVenusLinks" yaml:"moonVenusLinks"`
	MercuryLinks   int `json:"mercuryLinks" yaml:"mercuryLinks"`
	MarsLinks      int `json:"marsLinks" yaml:"marsLinks"`
	PlutoLinks     int `json:"plutoLinks" yaml:"plutoLinks"`
	SaturnLinks    int `json:"saturnLinks" yaml:"saturnLinks"`
	JupiterLinks   int `json:"jupiterLinks" yaml:"jupiterLinks"`
	NodeLinks      int `json:"nodeLinks" yaml:"nodeLinks"`

	DominantElement Element `json:"dominantElement" yaml:"dominantElement"`
	DominantMode    Mode    `json:"dominantMode" yaml:"dominantMode"`
	MissingElement  Element `json:"missingElement" yaml:"missingElement"`

	AverageOrb        float64 `json:"averageOrb" yaml:"averageOrb"`
	TightConjunctions int     `json:"tightConjunctions" yaml:"tightConjunctions"`

	HasSaturn bool `json:"hasSaturn" yaml:"hasSaturn"`
	HasPluto  bool `json:"hasPluto" yaml:"hasPluto"`
	HasNodes  bool `json:"hasNodes" yaml:"hasNodes"`

	KeyConnections []string `json:"keyConnections" yaml:"keyConnections"`
}

// Theme is a weighted semantic category with the signals that produced it.
type Theme struct {
	Name    ThemeName `json:"name" yaml:"name"`
	Weight  float64   `json:"weight" yaml:"weight"`
	Signals []string  `json:"signals" yaml:"signals"`
}

// Archetype is a pre-authored persona from the static library.
type Archetype struct {
	ID          ArchetypeID `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Tone        string      `json:"tone" yaml:"tone"`
	Keywords    []string    `json:"keywords" yaml:"keywords"`
	ColorScheme string      `json:"colorScheme" yaml:"colorScheme"`
}

// ConnectionProfile is the final engine output.
type ConnectionProfile struct {
	Score         int        `json:"score" yaml:"score"`
	Features      FeatureSet `json:"features" yaml:"features"`
	Themes        []Theme    `json:"themes" yaml:"themes"`
	DominantTheme Theme      `json:"dominantTheme" yaml:"dominantTheme"`
	Archetype     Archetype  `json:"archetype" yaml:"archetype"`
	Headline      string     `json:"headline" yaml:"headline"`
	Insight       string     `json:"insight" yaml:"insight"`
	Keywords      []string   `json:"keywords" yaml:"keywords"`
	ColorScheme   string     `json:"colorScheme" yaml:"colorScheme"`
}
