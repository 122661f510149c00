package synastry

import "slices"

// LibraryVersion identifies the revision of the archetype and insight libraries.
// Bump it whenever a persisted profile could render differently.
const LibraryVersion = "v1"

// ArchetypeID identifies an archetype in the static library.
type ArchetypeID string

// Archetype ids, grouped by theme in intensity order.
const (
	ArchetypeMirror    ArchetypeID = "the-mirror"
	ArchetypeOcean     ArchetypeID = "the-ocean"
	ArchetypeTwoHearts ArchetypeID = "two-hearts"

	ArchetypeThinkers            ArchetypeID = "the-thinkers"
	ArchetypeInventors           ArchetypeID = "the-inventors"
	ArchetypePerfectConversation ArchetypeID = "perfect-conversation"

	ArchetypePhoenix    ArchetypeID = "the-phoenix"
	ArchetypeAlchemists ArchetypeID = "the-alchemists"
	ArchetypeCatalyst   ArchetypeID = "the-catalyst"

	ArchetypeSoulContracts ArchetypeID = "soul-contracts"
	ArchetypeTeachers      ArchetypeID = "the-teachers"
	ArchetypeAncientSouls  ArchetypeID = "ancient-souls"

	ArchetypeFireMeetsFire      ArchetypeID = "fire-meets-fire"
	ArchetypeWarriors           ArchetypeID = "the-warriors"
	ArchetypeElectricConnection ArchetypeID = "electric-connection"

	ArchetypeInfinitePotential ArchetypeID = "infinite-potential"
	ArchetypeExplorers         ArchetypeID = "the-explorers"
	ArchetypeJourneyTogether   ArchetypeID = "journey-together"

	ArchetypeFoundation  ArchetypeID = "the-foundation"
	ArchetypeEarthRoots  ArchetypeID = "earth-roots"
	ArchetypeUnshakeable ArchetypeID = "unshakeable"

	ArchetypeCosmicCounterparts ArchetypeID = "cosmic-counterparts"
	ArchetypeNaturalConnection  ArchetypeID = "natural-connection"
	ArchetypeYinYang            ArchetypeID = "yin-yang"
)

// Score thresholds selecting an archetype within a theme.
const (
	archetypeIntenseScore = 85
	archetypeStrongScore  = 70
)

// archetypeLibrary maps each theme to three archetypes, most intense first.
// It is never written after initialization.
var archetypeLibrary = map[ThemeName][]Archetype{
	ThemeEmotional: {
		{
			ID:          ArchetypeMirror,
			Name:        "The Mirror",
			Description: "Two souls reflecting each other's depths",
			Tone:        "reflective, empathetic, deeply understanding",
			Keywords:    []string{"empathy", "reflection", "understanding", "depth"},
			ColorScheme: "soft blue and silver gradient",
		},
		{
			ID:          ArchetypeOcean,
			Name:        "The Ocean",
			Description: "Emotions flow together like tides",
			Tone:        "fluid, nurturing, ever-changing",
			Keywords:    []string{"flow", "tides", "nurture", "depth"},
			ColorScheme: "deep teal and aquamarine gradient",
		},
		{
			ID:          ArchetypeTwoHearts,
			Name:        "Two Hearts, One Rhythm",
			Description: "Hearts beating in perfect synchrony",
			Tone:        "harmonious, tender, unified",
			Keywords:    []string{"harmony", "unity", "tenderness", "love"},
			ColorScheme: "rose pink and lavender gradient",
		},
	},
	ThemeMental: {
		{
			ID:          ArchetypeThinkers,
			Name:        "The Thinkers",
			Description: "Minds that dance in conversation",
			Tone:        "intellectual, curious, stimulating",
			Keywords:    []string{"intellect", "conversation", "ideas", "curiosity"},
			ColorScheme: "bright yellow and cyan gradient",
		},
		{
			ID:          ArchetypeInventors,
			Name:        "The Inventors",
			Description: "Creating new worlds through shared vision",
			Tone:        "innovative, visionary, collaborative",
			Keywords:    []string{"innovation", "vision", "creation", "future"},
			ColorScheme: "electric blue and silver gradient",
		},
		{
			ID:          ArchetypePerfectConversation,
			Name:        "A Perfect Conversation",
			Description: "Words flow like music between you",
			Tone:        "articulate, flowing, effortless",
			Keywords:    []string{"communication", "flow", "understanding", "expression"},
			ColorScheme: "sky blue and white gradient",
		},
	},
	ThemeTransformational: {
		{
			ID:          ArchetypePhoenix,
			Name:        "The Phoenix Pair",
			Description: "Rising from ashes, transformed together",
			Tone:        "intense, renewing, growth through contrast",
			Keywords:    []string{"rebirth", "transformation", "power", "depth"},
			ColorScheme: "deep purple and magenta gradient",
		},
		{
			ID:          ArchetypeAlchemists,
			Name:        "The Alchemists",
			Description: "Turning pain into gold together",
			Tone:        "transformative, powerful, healing",
			Keywords:    []string{"alchemy", "healing", "power", "transformation"},
			ColorScheme: "gold and deep violet gradient",
		},
		{
			ID:          ArchetypeCatalyst,
			Name:        "The Catalyst",
			Description: "Each one changes the other forever",
			Tone:        "intense, evolutionary, profound",
			Keywords:    []string{"change", "evolution", "intensity", "depth"},
			ColorScheme: "crimson and indigo gradient",
		},
	},
	ThemeKarmic: {
		{
			ID:          ArchetypeSoulContracts,
			Name:        "The Soul Contract",
			Description: "Written in the stars before you met",
			Tone:        "fated, meaningful, destined",
			Keywords:    []string{"destiny", "fate", "lessons", "purpose"},
			ColorScheme: "midnight blue and gold gradient",
		},
		{
			ID:          ArchetypeTeachers,
			Name:        "The Teachers",
			Description: "Here to teach each other the hardest lessons",
			Tone:        "challenging, meaningful, growth-oriented",
			Keywords:    []string{"lessons", "growth", "wisdom", "purpose"},
			ColorScheme: "deep navy and silver gradient",
		},
		{
			ID:          ArchetypeAncientSouls,
			Name:        "Ancient Souls",
			Description: "You've known each other across lifetimes",
			Tone:        "timeless, familiar, profound",
			Keywords:    []string{"timeless", "recognition", "depth", "eternity"},
			ColorScheme: "dark purple and moonlight silver gradient",
		},
	},
	ThemeDynamic: {
		{
			ID:          ArchetypeFireMeetsFire,
			Name:        "Fire Meets Fire",
			Description: "Passion and energy create sparks",
			Tone:        "passionate, energetic, exciting",
			Keywords:    []string{"passion", "energy", "spark", "action"},
			ColorScheme: "orange and red gradient",
		},
		{
			ID:          ArchetypeWarriors,
			Name:        "The Warriors",
			Description: "Fighting for the same cause, side by side",
			Tone:        "courageous, action-oriented, powerful",
			Keywords:    []string{"courage", "action", "strength", "partnership"},
			ColorScheme: "ruby red and gold gradient",
		},
		{
			ID:          ArchetypeElectricConnection,
			Name:        "Electric Connection",
			Description: "Energy crackles between you",
			Tone:        "electrifying, dynamic, alive",
			Keywords:    []string{"electricity", "energy", "alive", "dynamic"},
			ColorScheme: "bright yellow and electric blue gradient",
		},
	},
	ThemeGrowth: {
		{
			ID:          ArchetypeInfinitePotential,
			Name:        "Infinite Potential",
			Description: "Together, anything is possible",
			Tone:        "expansive, optimistic, limitless",
			Keywords:    []string{"expansion", "possibility", "growth", "adventure"},
			ColorScheme: "bright gold and sky blue gradient",
		},
		{
			ID:          ArchetypeExplorers,
			Name:        "The Explorers",
			Description: "Discovering new worlds together",
			Tone:        "adventurous, curious, expanding",
			Keywords:    []string{"adventure", "discovery", "exploration", "growth"},
			ColorScheme: "sunrise orange and turquoise gradient",
		},
		{
			ID:          ArchetypeJourneyTogether,
			Name:        "Journey Together",
			Description: "The path unfolds as you walk it",
			Tone:        "progressive, optimistic, evolving",
			Keywords:    []string{"journey", "progress", "growth", "partnership"},
			ColorScheme: "warm yellow and green gradient",
		},
	},
	ThemeStable: {
		{
			ID:          ArchetypeFoundation,
			Name:        "The Foundation",
			Description: "Built to last through any storm",
			Tone:        "stable, enduring, reliable",
			Keywords:    []string{"stability", "endurance", "trust", "foundation"},
			ColorScheme: "forest green and brown gradient",
		},
		{
			ID:          ArchetypeEarthRoots,
			Name:        "Earth Roots",
			Description: "Grounded together in reality",
			Tone:        "grounded, practical, secure",
			Keywords:    []string{"grounded", "practical", "roots", "security"},
			ColorScheme: "earth brown and sage green gradient",
		},
		{
			ID:          ArchetypeUnshakeable,
			Name:        "Unshakeable",
			Description: "A connection that cannot be moved",
			Tone:        "solid, dependable, lasting",
			Keywords:    []string{"solid", "dependable", "lasting", "trust"},
			ColorScheme: "stone gray and forest green gradient",
		},
	},
	ThemeBalanced: {
		{
			ID:          ArchetypeCosmicCounterparts,
			Name:        "Cosmic Counterparts",
			Description: "Different but perfectly complementary",
			Tone:        "balanced, harmonious, complementary",
			Keywords:    []string{"balance", "harmony", "complement", "wholeness"},
			ColorScheme: "purple and gold gradient",
		},
		{
			ID:          ArchetypeNaturalConnection,
			Name:        "Natural Connection",
			Description: "It just works, effortlessly",
			Tone:        "natural, easy, comfortable",
			Keywords:    []string{"natural", "ease", "comfort", "flow"},
			ColorScheme: "soft blue and warm beige gradient",
		},
		{
			ID:          ArchetypeYinYang,
			Name:        "Yin & Yang",
			Description: "Opposite energies creating perfect balance",
			Tone:        "balanced, complementary, unified",
			Keywords:    []string{"balance", "opposites", "unity", "wholeness"},
			ColorScheme: "black and white with purple accent gradient",
		},
	},
}

// clone returns a copy that shares no mutable state with the library.
func (a Archetype) clone() Archetype {
	a.Keywords = slices.Clone(a.Keywords)
	return a
}

// DeriveArchetype picks the archetype for the dominant (first) theme. The score
// selects the intensity: 85+ takes the first entry, 70+ the second, anything
// lower the third. Unknown themes and an empty theme list use the balanced set.
func DeriveArchetype(themes []Theme, score int) Archetype {
	if len(themes) == 0 {
		return archetypeLibrary[ThemeBalanced][0].clone()
	}

	candidates := archetypesFor(themes[0].Name)

	var index int
	switch {
	case score >= archetypeIntenseScore:
		index = 0
	case score >= archetypeStrongScore:
		index = 1
	default:
		index = 2
	}
	index = min(index, len(candidates)-1)

	return candidates[index].clone()
}

func archetypesFor(name ThemeName) []Archetype {
	if candidates, ok := archetypeLibrary[name]; ok && len(candidates) > 0 {
		return candidates
	}
	return archetypeLibrary[ThemeBalanced]
}

// ArchetypesForTheme returns a copy of the archetypes for a theme, falling back
// to the balanced set for unknown names.
func ArchetypesForTheme(name ThemeName) []Archetype {
	candidates := archetypesFor(name)
	out := make([]Archetype, len(candidates))
	for i, a := range candidates {
		out[i] = a.clone()
	}
	return out
}

// ArchetypeByID looks up an archetype across every theme.
func ArchetypeByID(id ArchetypeID) (Archetype, bool) {
	for _, name := range ThemeNames {
		for _, a := range archetypeLibrary[name] {
			if a.ID == id {
				return a.clone(), true
			}
		}
	}
	return Archetype{}, false
}
