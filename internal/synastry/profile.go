package synastry

import "math"

// Score weights. Harmonious ratio can add up to 50, challenging ratio can
// remove up to 25, each quality bonus adds 5.
const (
	baseScore           = 50.0
	harmoniousWeight    = 50.0
	challengingWeight   = 25.0
	qualityBonus        = 5.0
	challengeHeavyMalus = 10.0
	tightOrbThreshold   = 2.0
	minScore, maxScore  = 0, 100
	bonusMoonVenusLinks = 2
	bonusTightConjuncts = 2
	bonusKeyConnections = 3
)

// CalculateScore derives the 0..100 compatibility score from a feature set.
//
// A feature set with no aspects divides by one, so both ratios are zero and the
// result is the base score. The tight-orb bonus needs at least one counted
// aspect; charts whose aspects carry no orb average zero and earn it.
func CalculateScore(f FeatureSet) int {
	total := float64(f.TotalAspects)
	if total == 0 {
		total = 1
	}
	harmoniousRatio := float64(f.HarmoniousAspects) / total
	challengingRatio := float64(f.ChallengingAspects) / total

	score := baseScore
	score += harmoniousRatio * harmoniousWeight
	score -= challengingRatio * challengingWeight

	if f.MoonVenusLinks >= bonusMoonVenusLinks {
		score += qualityBonus
	}
	if f.TightConjunctions >= bonusTightConjuncts {
		score += qualityBonus
	}
	if f.TotalAspects > 0 && f.AverageOrb < tightOrbThreshold {
		score += qualityBonus
	}
	if len(f.KeyConnections) >= bonusKeyConnections {
		score += qualityBonus
	}

	if f.ChallengingAspects > f.HarmoniousAspects*2 {
		score -= challengeHeavyMalus
	}

	return max(minScore, min(maxScore, int(roundHalfUp(score))))
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// GenerateConnectionProfile runs the full pipeline on one chart comparison:
// features, themes, score, archetype, then text.
func GenerateConnectionProfile(data *SwissData) ConnectionProfile {
	features := ExtractFeatures(data)

	themes := DetectThemes(features)
	dominant := DominantTheme(themes)

	score := CalculateScore(features)

	archetype := DeriveArchetype(themes, score)

	return ConnectionProfile{
		Score:         score,
		Features:      features,
		Themes:        themes,
		DominantTheme: dominant,
		Archetype:     archetype,
		Headline:      PoeticHeadline(archetype, score),
		Insight:       Insight(archetype, dominant, features, score),
		Keywords:      Keywords(archetype, themes),
		ColorScheme:   archetype.ColorScheme,
	}
}

// RarityPercentile estimates how rare a score is, as the percentage of
// connections it outranks.
func RarityPercentile(score int) int {
	switch {
	case score >= 95:
		return 99
	case score >= 90:
		return 95
	case score >= 85:
		return 90
	case score >= 80:
		return 85
	case score >= 75:
		return 75
	case score >= 70:
		return 65
	case score >= 60:
		return 50
	default:
		return max(0, int(roundHalfUp(float64(score)/60*50)))
	}
}
