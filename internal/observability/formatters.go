// Package observability provides formatted output utilities for the CLI text mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/jonathan/sync-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted text output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the box content width, counting runes.
func pad(line string) string {
	width := boxWidth - 4
	n := utf8.RuneCountInString(line)
	if n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// PrintConnectionProfile outputs a human-readable summary of a connection profile.
func (p *Printer) PrintConnectionProfile(profile *synastry.ConnectionProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", profile.Headline)
	fmt.Fprintf(&sb, "Score:    %d/100 (rarer than %d%%)\n", profile.Score, synastry.RarityPercentile(profile.Score))
	fmt.Fprintf(&sb, "Theme:    %s\n", profile.DominantTheme.Name)
	fmt.Fprintf(&sb, "Colors:   %s\n", profile.ColorScheme)
	sb.WriteString("\n")

	for _, line := range wrap(profile.Insight, boxWidth-4) {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")

	f := profile.Features
	fmt.Fprintf(&sb, "Aspects:  %d (%d harmonious, %d challenging, %d neutral)\n",
		f.TotalAspects, f.HarmoniousAspects, f.ChallengingAspects, f.NeutralAspects)
	if f.DominantElement != "" {
		fmt.Fprintf(&sb, "Element:  %s", f.DominantElement)
		if f.MissingElement != "" {
			fmt.Fprintf(&sb, " (missing %s)", f.MissingElement)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(f.KeyConnections) > 0 {
		sb.WriteString("Key Connections:\n")
		count := min(len(f.KeyConnections), maxItemsToShow)
		for _, c := range f.KeyConnections[:count] {
			fmt.Fprintf(&sb, "  • %s\n", c)
		}
		if len(f.KeyConnections) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(f.KeyConnections)-maxItemsToShow)
		}
		sb.WriteString("\n")
	}

	if len(profile.Themes) > 0 {
		sb.WriteString("Themes:\n")
		for _, theme := range profile.Themes {
			fmt.Fprintf(&sb, "  • %-16s %.1f\n", theme.Name, theme.Weight)
		}
		sb.WriteString("\n")
	}

	if len(profile.Keywords) > 0 {
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(profile.Keywords, ", "))
	}

	p.printBox("CONNECTION PROFILE", sb.String())
}

// PrintArchetypeCatalog outputs the archetype library grouped by theme.
func (p *Printer) PrintArchetypeCatalog(catalog *types.ArchetypeCatalog) {
	if catalog == nil {
		return
	}

	var sb strings.Builder
	for i, group := range catalog.Themes {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s\n", strings.ToUpper(string(group.Theme)))
		for _, a := range group.Archetypes {
			fmt.Fprintf(&sb, "  • %s [%s]\n", a.Name, a.ID)
			fmt.Fprintf(&sb, "    %s\n", a.Description)
		}
	}

	p.printBox(fmt.Sprintf("ARCHETYPE LIBRARY %s", catalog.LibraryVersion), sb.String())
}
