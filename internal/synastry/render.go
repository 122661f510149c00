package synastry

// Score thresholds selecting the insight sentence.
const (
	insightExceptionalScore = 90
	insightStrongScore      = 75
	insightModerateScore    = 60
)

// insightSet holds one sentence per score band.
type insightSet struct {
	Exceptional string
	Strong      string
	Moderate    string
	Challenging string
}

func (s insightSet) forScore(score int) string {
	switch {
	case score >= insightExceptionalScore:
		return s.Exceptional
	case score >= insightStrongScore:
		return s.Strong
	case score >= insightModerateScore:
		return s.Moderate
	default:
		return s.Challenging
	}
}

var genericInsights = insightSet{
	Exceptional: "A rare connection with profound depth.",
	Strong:      "Something meaningful is unfolding between you.",
	Moderate:    "A connection with layers waiting to be discovered.",
	Challenging: "Growth happening beneath the surface.",
}

var insightLibrary = map[ArchetypeID]insightSet{
	ArchetypeMirror: {
		Exceptional: "Your souls create a rare space where vulnerability becomes strength.",
		Strong:      "You see each other with a clarity most people spend lifetimes searching for.",
		Moderate:    "Emotions flow between you, creating moments of profound recognition.",
		Challenging: "Learning to reflect each other's truths, even when they're difficult.",
	},
	ArchetypeOcean: {
		Exceptional: "Your connection is deep enough to hold every wave, every storm.",
		Strong:      "Emotions move between you like tides—powerful, natural, inevitable.",
		Moderate:    "You navigate emotional depths together, learning each other's rhythms.",
		Challenging: "Finding your flow together, even when the waters are choppy.",
	},
	ArchetypeTwoHearts: {
		Exceptional: "Your energies create a rare space where logic and intuition can dance together.",
		Strong:      "Hearts beating to the same cosmic rhythm, creating profound understanding.",
		Moderate:    "A connection where feelings are understood before they're spoken.",
		Challenging: "Learning to sync your emotional frequencies.",
	},
	ArchetypeThinkers: {
		Exceptional: "Conversation flows effortlessly between you, like a river finding its path.",
		Strong:      "Your minds meet in that rare space where ideas catch fire.",
		Moderate:    "You spark each other's curiosity in ways that feel both familiar and exciting.",
		Challenging: "Finding the bridge between your different ways of thinking.",
	},
	ArchetypeInventors: {
		Exceptional: "Together, you see possibilities invisible to everyone else.",
		Strong:      "Your shared vision creates realities others haven't imagined yet.",
		Moderate:    "Ideas flow between you, building something neither could create alone.",
		Challenging: "Learning to merge your visions into one shared future.",
	},
	ArchetypePerfectConversation: {
		Exceptional: "Words flow like music, every conversation a symphony.",
		Strong:      "You speak different languages yet somehow understand perfectly.",
		Moderate:    "Communication feels effortless when you're on the same wavelength.",
		Challenging: "Finding the words when the connection feels right but expression is hard.",
	},
	ArchetypePhoenix: {
		Exceptional: "Every challenge transforms you both into something more beautiful.",
		Strong:      "Intensity becomes your teacher, transformation your shared language.",
		Moderate:    "Growing through contrast, learning through depth.",
		Challenging: "The friction creates heat, but also the potential for profound change.",
	},
	ArchetypeAlchemists: {
		Exceptional: "Together, you turn lead into gold, pain into wisdom.",
		Strong:      "Your connection has the power to heal what was broken.",
		Moderate:    "Learning the art of transformation together.",
		Challenging: "The raw materials are here; the alchemy takes time.",
	},
	ArchetypeCatalyst: {
		Exceptional: "Each one changes the other in ways that feel both terrifying and inevitable.",
		Strong:      "You trigger evolution in each other just by existing.",
		Moderate:    "This connection won't leave either of you unchanged.",
		Challenging: "Growth through intensity, even when it's uncomfortable.",
	},
	ArchetypeSoulContracts: {
		Exceptional: "Written in the stars before either of you were born.",
		Strong:      "Some meetings aren't accidents—they're appointments.",
		Moderate:    "A sense of purpose underlies everything between you.",
		Challenging: "Karmic connections aren't always easy, but they're always meaningful.",
	},
	ArchetypeTeachers: {
		Exceptional: "Here to teach each other the lessons no one else could.",
		Strong:      "Every challenge between you carries a hidden gift.",
		Moderate:    "Learning the hardest lessons together.",
		Challenging: "The teacher can feel like the adversary until the lesson is learned.",
	},
	ArchetypeAncientSouls: {
		Exceptional: "You've known each other across lifetimes—this is just one chapter.",
		Strong:      "A familiarity that transcends this lifetime.",
		Moderate:    "Something in this connection feels older than both of you.",
		Challenging: "Old patterns resurface, asking to be healed.",
	},
	ArchetypeFireMeetsFire: {
		Exceptional: "Your combined energy could move mountains or start revolutions.",
		Strong:      "Passion meets passion, creating something incandescent.",
		Moderate:    "The spark between you is undeniable.",
		Challenging: "Too much fire can burn, but it also illuminates.",
	},
	ArchetypeWarriors: {
		Exceptional: "Side by side, nothing can stand in your way.",
		Strong:      "You fight for each other, with each other, never against.",
		Moderate:    "Shared battles create unbreakable bonds.",
		Challenging: "Learning to channel your warrior energy together, not at each other.",
	},
	ArchetypeElectricConnection: {
		Exceptional: "Energy crackles between you—impossible to ignore, impossible to contain.",
		Strong:      "The air feels charged when you're together.",
		Moderate:    "A dynamic that keeps both of you on your toes.",
		Challenging: "Electric connections can short-circuit as easily as they ignite.",
	},
	ArchetypeInfinitePotential: {
		Exceptional: "Together, you expand into versions of yourselves you never knew existed.",
		Strong:      "Every moment together opens new doors to possibility.",
		Moderate:    "A sense that this connection could take you anywhere.",
		Challenging: "So much potential it almost feels overwhelming.",
	},
	ArchetypeExplorers: {
		Exceptional: "You're not just discovering the world together—you're discovering each other.",
		Strong:      "Adventure feels natural when you're side by side.",
		Moderate:    "Always something new to learn, explore, experience.",
		Challenging: "Growth requires stepping into the unknown together.",
	},
	ArchetypeJourneyTogether: {
		Exceptional: "The path unfolds perfectly, as if it was waiting for you both.",
		Strong:      "You're not walking the same path—you're creating it together.",
		Moderate:    "A sense of forward momentum, of evolution.",
		Challenging: "Every journey has rough terrain, but you're walking it together.",
	},
	ArchetypeFoundation: {
		Exceptional: "Built to withstand any storm, to last beyond lifetimes.",
		Strong:      "A rare stability in a chaotic world.",
		Moderate:    "You're building something solid, brick by brick.",
		Challenging: "Foundations take time, but they're worth the wait.",
	},
	ArchetypeEarthRoots: {
		Exceptional: "Grounded together so deeply, nothing can uproot you.",
		Strong:      "A connection that feels real, solid, dependable.",
		Moderate:    "Finding security in each other's presence.",
		Challenging: "Learning to plant roots without feeling trapped.",
	},
	ArchetypeUnshakeable: {
		Exceptional: "A connection this solid is rarer than you might think.",
		Strong:      "You've found something immovable in a shifting world.",
		Moderate:    "Building trust, one day at a time.",
		Challenging: "Stability is being built, even if it doesn't feel solid yet.",
	},
	ArchetypeCosmicCounterparts: {
		Exceptional: "Your energies create a rare space where logic and intuition can dance together.",
		Strong:      "A connection this balanced is rarer than you might think.",
		Moderate:    "You complement each other in ways that feel both natural and magical.",
		Challenging: "Finding balance between your different energies.",
	},
	ArchetypeNaturalConnection: {
		Exceptional: "It just works, and that simplicity is its own kind of magic.",
		Strong:      "The best connections don't require force—they just flow.",
		Moderate:    "An ease between you that feels rare.",
		Challenging: "Natural doesn't mean effortless, but it means right.",
	},
	ArchetypeYinYang: {
		Exceptional: "Opposite energies that create something more whole than either alone.",
		Strong:      "Your differences aren't obstacles—they're the point.",
		Moderate:    "Learning to embrace contrast as complement.",
		Challenging: "Opposites attract, but they also challenge.",
	},
}

// themeKeywords are the keyword pairs contributed by each of the top two themes.
var themeKeywords = map[ThemeName][]string{
	ThemeEmotional:        {"emotional", "empathy"},
	ThemeMental:           {"intellectual", "communication"},
	ThemeTransformational: {"transformation", "power"},
	ThemeKarmic:           {"destiny", "fate"},
	ThemeDynamic:          {"energy", "passion"},
	ThemeGrowth:           {"expansion", "potential"},
	ThemeStable:           {"stable", "enduring"},
}

// PoeticHeadline returns the headline for a profile. The archetype name is the
// headline; score is part of the signature for headline variants keyed on it.
func PoeticHeadline(archetype Archetype, score int) string {
	return archetype.Name
}

// Insight returns the one-line insight for an archetype at a given score.
// Archetypes without authored insights use a generic set. The dominant theme
// and features are accepted so selection rules can grow without an API change;
// the current rules depend on the archetype and score only.
func Insight(archetype Archetype, dominant Theme, features FeatureSet, score int) string {
	set, ok := insightLibrary[archetype.ID]
	if !ok {
		set = genericInsights
	}
	return set.forScore(score)
}

// Subheadline returns the tagline shown under the headline.
func Subheadline(archetype Archetype, dominant Theme) string {
	return archetype.Description
}

// Keywords merges the archetype keywords with the keyword pairs of the top two
// themes. Duplicates are dropped; first occurrence wins.
func Keywords(archetype Archetype, themes []Theme) []string {
	seen := make(map[string]bool)
	keywords := make([]string, 0, len(archetype.Keywords)+4)

	appendUnique := func(words ...string) {
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				keywords = append(keywords, w)
			}
		}
	}

	appendUnique(archetype.Keywords...)
	for _, theme := range themes[:min(2, len(themes))] {
		appendUnique(themeKeywords[theme.Name]...)
	}
	return keywords
}
