package synastry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchetypeLibrary_Complete(t *testing.T) {
	seen := make(map[ArchetypeID]bool)
	for _, name := range ThemeNames {
		archetypes, ok := archetypeLibrary[name]
		require.True(t, ok, "theme %s has no archetypes", name)
		require.Len(t, archetypes, 3, "theme %s", name)

		for _, a := range archetypes {
			assert.False(t, seen[a.ID], "duplicate archetype id %s", a.ID)
			seen[a.ID] = true

			assert.NotEmpty(t, a.Name)
			assert.NotEmpty(t, a.Description)
			assert.NotEmpty(t, a.Tone)
			assert.NotEmpty(t, a.Keywords)
			assert.NotEmpty(t, a.ColorScheme)
		}
	}
	assert.Len(t, seen, 24)
}

func TestDeriveArchetype_ScoreBands(t *testing.T) {
	themes := []Theme{{Name: ThemeTransformational, Weight: 0.5}}

	tests := []struct {
		score int
		want  ArchetypeID
	}{
		{score: 100, want: ArchetypePhoenix},
		{score: 90, want: ArchetypePhoenix},
		{score: 85, want: ArchetypePhoenix},
		{score: 84, want: ArchetypeAlchemists},
		{score: 75, want: ArchetypeAlchemists},
		{score: 70, want: ArchetypeAlchemists},
		{score: 69, want: ArchetypeCatalyst},
		{score: 60, want: ArchetypeCatalyst},
		{score: 0, want: ArchetypeCatalyst},
	}

	for _, tt := range tests {
		got := DeriveArchetype(themes, tt.score)
		assert.Equal(t, tt.want, got.ID, "score %d", tt.score)
	}
}

func TestDeriveArchetype_Fallbacks(t *testing.T) {
	t.Run("empty themes", func(t *testing.T) {
		assert.Equal(t, ArchetypeCosmicCounterparts, DeriveArchetype(nil, 40).ID)
	})

	t.Run("unknown theme uses balanced set", func(t *testing.T) {
		themes := []Theme{{Name: "celestial", Weight: 1}}
		assert.Equal(t, ArchetypeCosmicCounterparts, DeriveArchetype(themes, 90).ID)
		assert.Equal(t, ArchetypeNaturalConnection, DeriveArchetype(themes, 72).ID)
		assert.Equal(t, ArchetypeYinYang, DeriveArchetype(themes, 10).ID)
	})
}

func TestDeriveArchetype_ReturnsCopy(t *testing.T) {
	themes := []Theme{{Name: ThemeEmotional, Weight: 1}}

	a := DeriveArchetype(themes, 95)
	a.Keywords[0] = "mutated"

	b := DeriveArchetype(themes, 95)
	assert.Equal(t, "empathy", b.Keywords[0])
}

func TestArchetypesForTheme(t *testing.T) {
	growth := ArchetypesForTheme(ThemeGrowth)
	require.Len(t, growth, 3)
	assert.Equal(t, ArchetypeInfinitePotential, growth[0].ID)
	assert.Equal(t, ArchetypeExplorers, growth[1].ID)
	assert.Equal(t, ArchetypeJourneyTogether, growth[2].ID)

	unknown := ArchetypesForTheme("nonexistent")
	require.Len(t, unknown, 3)
	assert.Equal(t, ArchetypeCosmicCounterparts, unknown[0].ID)
}

func TestArchetypeByID(t *testing.T) {
	a, ok := ArchetypeByID(ArchetypeSoulContracts)
	require.True(t, ok)
	assert.Equal(t, "The Soul Contract", a.Name)
	assert.Equal(t, "midnight blue and gold gradient", a.ColorScheme)

	_, ok = ArchetypeByID("the-void")
	assert.False(t, ok)
}
