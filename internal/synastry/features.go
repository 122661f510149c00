package synastry

import (
	"fmt"
	"slices"
	"strings"
)

const (
	maxKeyConnections   = 5
	tightConjunctionOrb = 2.0
)

var (
	harmoniousAspects  = []string{"trine", "sextile", "conjunction"}
	challengingAspects = []string{"square", "opposition"}
	neutralAspects     = []string{"semisquare", "sesquiquadrate", "quincunx"}

	emotionalPlanets = []string{"Moon", "Venus", "Neptune"}
	keyPlanets       = []string{"Sun", "Moon", "Venus", "Mars", "Mercury", "Ascendant"}
)

var signElements = map[string]Element{
	"Aries": ElementFire, "Leo": ElementFire, "Sagittarius": ElementFire,
	"Taurus": ElementEarth, "Virgo": ElementEarth, "Capricorn": ElementEarth,
	"Gemini": ElementAir, "Libra": ElementAir, "Aquarius": ElementAir,
	"Cancer": ElementWater, "Scorpio": ElementWater, "Pisces": ElementWater,
}

var signModes = map[string]Mode{
	"Aries": ModeCardinal, "Cancer": ModeCardinal, "Libra": ModeCardinal, "Capricorn": ModeCardinal,
	"Taurus": ModeFixed, "Leo": ModeFixed, "Scorpio": ModeFixed, "Aquarius": ModeFixed,
	"Gemini": ModeMutable, "Virgo": ModeMutable, "Sagittarius": ModeMutable, "Pisces": ModeMutable,
}

// ExtractFeatures reduces raw chart data to a FeatureSet without interpreting it.
// Aspects missing a type or either planet are skipped and not counted. A nil
// input yields the zero feature set.
func ExtractFeatures(data *SwissData) FeatureSet {
	f := FeatureSet{KeyConnections: []string{}}

	var orbSum float64
	var orbCount int

	for _, aspect := range data.Aspects() {
		if !aspect.valid() {
			continue
		}

		aspectType := strings.ToLower(aspect.Type)
		a, b := aspect.A, aspect.B

		f.TotalAspects++
		switch {
		case slices.Contains(harmoniousAspects, aspectType):
			f.HarmoniousAspects++
		case slices.Contains(challengingAspects, aspectType):
			f.ChallengingAspects++
		case slices.Contains(neutralAspects, aspectType):
			f.NeutralAspects++
		}

		if aspect.Orb > 0 {
			orbSum += aspect.Orb
			orbCount++
		}
		if aspectType == "conjunction" && aspect.Orb < tightConjunctionOrb {
			f.TightConjunctions++
		}

		if slices.Contains(emotionalPlanets, a) && slices.Contains(emotionalPlanets, b) {
			f.MoonVenusLinks++
		}
		if touches(a, b, "Mercury") {
			f.MercuryLinks++
		}
		if touches(a, b, "Mars") {
			f.MarsLinks++
		}
		if touches(a, b, "Pluto") {
			f.PlutoLinks++
			f.HasPluto = true
		}
		if touches(a, b, "Saturn") {
			f.SaturnLinks++
			f.HasSaturn = true
		}
		if touches(a, b, "Jupiter") {
			f.JupiterLinks++
		}
		if strings.Contains(a, "Node") || strings.Contains(b, "Node") {
			f.NodeLinks++
			f.HasNodes = true
		}

		if len(f.KeyConnections) < maxKeyConnections &&
			(slices.Contains(keyPlanets, a) || slices.Contains(keyPlanets, b)) {
			f.KeyConnections = append(f.KeyConnections, fmt.Sprintf("%s %s %s", a, aspect.Type, b))
		}
	}

	if orbCount > 0 {
		f.AverageOrb = orbSum / float64(orbCount)
	}

	f.DominantElement, f.MissingElement = elementDominance(data)
	f.DominantMode = modeDominance(data)

	return f
}

func touches(a, b, planet string) bool {
	return a == planet || b == planet
}

// elementDominance tallies elements across both charts. Ties go to the element
// enumerated first. The missing element is only reported when its count is zero.
func elementDominance(data *SwissData) (dominant, missing Element) {
	counts := make(map[Element]int, len(elementOrder))
	for _, planets := range data.placements() {
		for _, placement := range planets {
			if element, ok := signElements[placement.Sign]; ok {
				counts[element]++
			}
		}
	}

	maxCount := 0
	minCount := -1
	for _, element := range elementOrder {
		count := counts[element]
		if count > maxCount {
			maxCount = count
			dominant = element
		}
		if minCount < 0 || count < minCount {
			minCount = count
			missing = element
		}
	}

	if minCount > 0 {
		missing = ""
	}
	return dominant, missing
}

// modeDominance tallies modes across both charts; ties go to the mode enumerated first.
func modeDominance(data *SwissData) Mode {
	counts := make(map[Mode]int, len(modeOrder))
	for _, planets := range data.placements() {
		for _, placement := range planets {
			if mode, ok := signModes[placement.Sign]; ok {
				counts[mode]++
			}
		}
	}

	var dominant Mode
	maxCount := 0
	for _, mode := range modeOrder {
		if counts[mode] > maxCount {
			maxCount = counts[mode]
			dominant = mode
		}
	}
	return dominant
}
