// Package types provides request and response envelopes for the sync engine service.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sync-engine/internal/synastry"
)

// CalculateSyncScoreRequest asks for the sync score of one chat.
type CalculateSyncScoreRequest struct {
	ChatID string `json:"chat_id" validate:"required,uuid"`
}

// Persons holds the display names of the two people in a chat.
type Persons struct {
	PersonA string `json:"person_a" validate:"required"`
	PersonB string `json:"person_b" validate:"required"`
}

// SyncScoreRecord is the persisted result of a sync score calculation.
type SyncScoreRecord struct {
	ChatID           string                     `json:"chat_id" validate:"required,uuid"`
	Profile          synastry.ConnectionProfile `json:"profile"`
	Subheadline      string                     `json:"subheadline"`
	RarityPercentile int                        `json:"rarity_percentile" validate:"gte=0,lte=99"`
	Persons          Persons                    `json:"persons"`
	LibraryVersion   string                     `json:"library_version" validate:"required"`
	CalculatedAt     time.Time                  `json:"calculated_at" validate:"required"`
}

// SyncScoreResponse wraps a record returned by the calculate endpoint.
type SyncScoreResponse struct {
	Success bool             `json:"success"`
	Score   *SyncScoreRecord `json:"score"`
}

// ThemeArchetypes lists the archetypes of one theme, most intense first.
type ThemeArchetypes struct {
	Theme      synastry.ThemeName   `json:"theme"`
	Archetypes []synastry.Archetype `json:"archetypes"`
}

// ArchetypeCatalog is the full archetype library.
type ArchetypeCatalog struct {
	LibraryVersion string            `json:"library_version" yaml:"library_version"`
	Themes         []ThemeArchetypes `json:"themes" yaml:"themes"`
}

// NewArchetypeCatalog builds the catalogue from the static library. A non-empty
// theme restricts it to that theme.
func NewArchetypeCatalog(theme synastry.ThemeName) ArchetypeCatalog {
	names := synastry.ThemeNames
	if theme != "" {
		names = []synastry.ThemeName{theme}
	}

	catalog := ArchetypeCatalog{
		LibraryVersion: synastry.LibraryVersion,
		Themes:         make([]ThemeArchetypes, 0, len(names)),
	}
	for _, name := range names {
		catalog.Themes = append(catalog.Themes, ThemeArchetypes{
			Theme:      name,
			Archetypes: synastry.ArchetypesForTheme(name),
		})
	}
	return catalog
}

// Validate validates the CalculateSyncScoreRequest using the validator.
func (r *CalculateSyncScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SyncScoreRecord using the validator.
func (r *SyncScoreRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
