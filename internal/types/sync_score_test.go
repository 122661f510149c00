package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSyncScoreRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		chatID  string
		wantTag string
	}{
		{"valid", uuid.NewString(), ""},
		{"missing", "", "required"},
		{"not a uuid", "chat-123", "uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CalculateSyncScoreRequest{ChatID: tt.chatID}
			err := req.Validate()
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs validator.ValidationErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, "ChatID", fieldErrs[0].Field())
			assert.Equal(t, tt.wantTag, fieldErrs[0].Tag())
		})
	}
}

func validRecord() SyncScoreRecord {
	return SyncScoreRecord{
		ChatID:           uuid.NewString(),
		Subheadline:      "Two souls reflecting each other's depths",
		RarityPercentile: 75,
		Persons:          Persons{PersonA: "Person A", PersonB: "Person B"},
		LibraryVersion:   synastry.LibraryVersion,
		CalculatedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSyncScoreRecord_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := validRecord()
		assert.NoError(t, r.Validate())
	})

	tests := []struct {
		name   string
		mutate func(r *SyncScoreRecord)
		field  string
	}{
		{"bad chat id", func(r *SyncScoreRecord) { r.ChatID = "nope" }, "ChatID"},
		{"rarity too high", func(r *SyncScoreRecord) { r.RarityPercentile = 100 }, "RarityPercentile"},
		{"rarity negative", func(r *SyncScoreRecord) { r.RarityPercentile = -1 }, "RarityPercentile"},
		{"missing person", func(r *SyncScoreRecord) { r.Persons.PersonB = "" }, "PersonB"},
		{"missing version", func(r *SyncScoreRecord) { r.LibraryVersion = "" }, "LibraryVersion"},
		{"missing timestamp", func(r *SyncScoreRecord) { r.CalculatedAt = time.Time{} }, "CalculatedAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			var fieldErrs validator.ValidationErrors
			require.ErrorAs(t, r.Validate(), &fieldErrs)
			assert.Equal(t, tt.field, fieldErrs[0].Field())
		})
	}
}

func TestSyncScoreRecord_JSONFieldNames(t *testing.T) {
	r := validRecord()
	jsonBytes, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	for _, key := range []string{"chat_id", "profile", "subheadline", "rarity_percentile", "persons", "library_version", "calculated_at"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, map[string]any{"person_a": "Person A", "person_b": "Person B"}, decoded["persons"])
}

func TestNewArchetypeCatalog(t *testing.T) {
	t.Run("full library", func(t *testing.T) {
		catalog := NewArchetypeCatalog("")
		assert.Equal(t, synastry.LibraryVersion, catalog.LibraryVersion)
		require.Len(t, catalog.Themes, len(synastry.ThemeNames))
		for i, theme := range catalog.Themes {
			assert.Equal(t, synastry.ThemeNames[i], theme.Theme)
			assert.Len(t, theme.Archetypes, 3)
		}
	})

	t.Run("single theme", func(t *testing.T) {
		catalog := NewArchetypeCatalog(synastry.ThemeEmotional)
		require.Len(t, catalog.Themes, 1)
		assert.Equal(t, synastry.ThemeEmotional, catalog.Themes[0].Theme)
		assert.Equal(t, synastry.ArchetypeMirror, catalog.Themes[0].Archetypes[0].ID)
	})

	t.Run("catalog is a copy", func(t *testing.T) {
		catalog := NewArchetypeCatalog(synastry.ThemeEmotional)
		catalog.Themes[0].Archetypes[0].Keywords[0] = "changed"

		fresh := NewArchetypeCatalog(synastry.ThemeEmotional)
		assert.Equal(t, "empathy", fresh.Themes[0].Archetypes[0].Keywords[0])
	})
}
