package synastry

import (
	"fmt"
	"sort"
)

// balancedFallback is synthesized when no rule produces a positive weight.
func balancedFallback(signal string) Theme {
	return Theme{Name: ThemeBalanced, Weight: 0.5, Signals: []string{signal}}
}

// themeScore accumulates weight and signals for one theme rule.
type themeScore struct {
	name    ThemeName
	weight  float64
	signals []string
}

func (s *themeScore) add(cond bool, weight float64, signal string) {
	if !cond {
		return
	}
	s.weight += weight
	s.signals = append(s.signals, signal)
}

func (s *themeScore) theme() (Theme, bool) {
	if s.weight <= 0 {
		return Theme{}, false
	}
	return Theme{Name: s.name, Weight: min(1, s.weight), Signals: s.signals}, true
}

// DetectThemes evaluates every theme rule against the feature set and returns the
// active themes sorted by weight, strongest first. The result is never empty.
func DetectThemes(f FeatureSet) []Theme {
	harmoniousLead := f.HarmoniousAspects > f.ChallengingAspects

	emotional := themeScore{name: ThemeEmotional}
	emotional.add(f.MoonVenusLinks > 0, 0.4, fmt.Sprintf("%d emotional planet link(s)", f.MoonVenusLinks))
	emotional.add(f.DominantElement == ElementWater, 0.3, "water element dominance")
	emotional.add(float64(f.HarmoniousAspects) > float64(f.ChallengingAspects)*1.5, 0.2, "harmonious flow")

	mental := themeScore{name: ThemeMental}
	mental.add(f.MercuryLinks >= 2, 0.5, fmt.Sprintf("%d mental connection(s)", f.MercuryLinks))
	mental.add(f.DominantElement == ElementAir, 0.4, "air element dominance")

	transformational := themeScore{name: ThemeTransformational}
	transformational.add(f.PlutoLinks > 0, 0.5, fmt.Sprintf("%d Pluto connection(s)", f.PlutoLinks))
	transformational.add(f.HasSaturn && f.ChallengingAspects > 0, 0.3, "Saturn lessons present")
	transformational.add(f.DominantElement == ElementWater && f.MarsLinks > 0, 0.2, "emotional intensity")

	karmic := themeScore{name: ThemeKarmic}
	karmic.add(f.HasNodes, 0.4, "nodal connections (past life)")
	karmic.add(f.HasSaturn && f.SaturnLinks >= 2, 0.4, "strong Saturn presence (karmic lessons)")
	karmic.add(f.TightConjunctions >= 2, 0.3, "tight conjunctions (fated meeting)")

	dynamic := themeScore{name: ThemeDynamic}
	dynamic.add(f.MarsLinks >= 2, 0.4, fmt.Sprintf("%d Mars connection(s)", f.MarsLinks))
	dynamic.add(f.DominantElement == ElementFire, 0.4, "fire element dominance")
	dynamic.add(f.DominantMode == ModeCardinal, 0.2, "cardinal mode (initiating energy)")

	growth := themeScore{name: ThemeGrowth}
	growth.add(f.JupiterLinks >= 2, 0.5, fmt.Sprintf("%d Jupiter expansion(s)", f.JupiterLinks))
	growth.add(f.DominantElement == ElementFire && harmoniousLead, 0.3, "optimistic fire energy")

	stable := themeScore{name: ThemeStable}
	stable.add(f.DominantElement == ElementEarth, 0.4, "earth element dominance")
	stable.add(f.DominantMode == ModeFixed, 0.3, "fixed mode (enduring connection)")
	stable.add(f.HasSaturn && harmoniousLead, 0.3, "Saturn provides structure")

	var themes []Theme
	for _, score := range []*themeScore{&emotional, &mental, &transformational, &karmic, &dynamic, &growth, &stable} {
		if theme, ok := score.theme(); ok {
			themes = append(themes, theme)
		}
	}

	if len(themes) == 0 {
		themes = append(themes, balancedFallback("diverse aspects present"))
	}

	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Weight > themes[j].Weight
	})
	return themes
}

// DominantTheme returns the strongest theme of a sorted theme list.
func DominantTheme(themes []Theme) Theme {
	if len(themes) == 0 {
		return balancedFallback("no specific dominance")
	}
	return themes[0]
}
