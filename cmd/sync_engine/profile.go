package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/sync-engine/internal/observability"
	"github.com/jonathan/sync-engine/internal/schemas"
	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Generate a connection profile from a SwissData JSON file",
	Long:  "Run the sync engine on a SwissData JSON file and print or write the resulting ConnectionProfile.",
	RunE:  runProfile,
}

var (
	profileInputFile  string
	profileOutputFile string
	profileFormat     string
	profileStrict     bool
)

func init() {
	profileCmd.Flags().StringVarP(&profileInputFile, "in", "i", "", "Path to SwissData JSON file (required)")
	profileCmd.Flags().StringVarP(&profileOutputFile, "out", "o", "", "Path to output file (default: stdout)")
	profileCmd.Flags().StringVarP(&profileFormat, "format", "f", formatJSON, "Output format: json, yaml or text")
	profileCmd.Flags().BoolVar(&profileStrict, "strict", false, "Reject input that fails schema validation")

	if err := profileCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(profileInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var buf bytes.Buffer
	if err := writeProfile(&buf, content, profileFormat, profileStrict); err != nil {
		return err
	}

	if profileOutputFile == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := writeFileAtomic(profileOutputFile, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote connection profile to %s\n", profileOutputFile)
	return nil
}

// generateProfile decodes a SwissData document and runs the engine. With
// strict set the document must also pass schema validation.
func generateProfile(content []byte, strict bool) (synastry.ConnectionProfile, error) {
	if strict {
		if err := schemas.ValidateSwissData(content); err != nil {
			return synastry.ConnectionProfile{}, err
		}
	}

	var data synastry.SwissData
	if err := json.Unmarshal(content, &data); err != nil {
		return synastry.ConnectionProfile{}, fmt.Errorf("failed to parse SwissData JSON: %w", err)
	}
	return synastry.GenerateConnectionProfile(&data), nil
}

// writeProfile generates a profile from content and writes it to w in format.
func writeProfile(w io.Writer, content []byte, format string, strict bool) error {
	profile, err := generateProfile(content, strict)
	if err != nil {
		return err
	}

	if format == formatText {
		observability.NewPrinter(w).PrintConnectionProfile(&profile)
		return nil
	}
	return encode(w, profile, format)
}
