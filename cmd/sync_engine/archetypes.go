package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/jonathan/sync-engine/internal/observability"
	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/jonathan/sync-engine/internal/types"
	"github.com/spf13/cobra"
)

var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "Print the archetype library",
	Long:  "Print every archetype grouped by theme, most intense first, optionally for a single theme.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeCatalog(cmd.OutOrStdout(), archetypesTheme, archetypesFormat)
	},
}

var (
	archetypesTheme  string
	archetypesFormat string
)

func init() {
	archetypesCmd.Flags().StringVar(&archetypesTheme, "theme", "", "Only list archetypes for this theme")
	archetypesCmd.Flags().StringVarP(&archetypesFormat, "format", "f", formatYAML, "Output format: yaml, json or text")

	rootCmd.AddCommand(archetypesCmd)
}

// writeCatalog writes the archetype catalogue for theme (all themes when empty).
func writeCatalog(w io.Writer, theme, format string) error {
	name := synastry.ThemeName(theme)
	if name != "" && !slices.Contains(synastry.ThemeNames, name) {
		return fmt.Errorf("unknown theme %q (valid: %v)", theme, synastry.ThemeNames)
	}

	catalog := types.NewArchetypeCatalog(name)
	if format == formatText {
		observability.NewPrinter(w).PrintArchetypeCatalog(&catalog)
		return nil
	}
	return encode(w, catalog, format)
}
