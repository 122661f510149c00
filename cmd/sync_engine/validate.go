package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/sync-engine/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a schema",
	Long: `Validate a SwissData input or a generated ConnectionProfile against the embedded
schemas, or any JSON file against a schema file given with --schema-file.`,
	RunE: runValidate,
}

var (
	validateInputFile  string
	validateKind       string
	validateSchemaFile string
)

// Schema kinds accepted by --kind.
const (
	kindSwissData = "swiss_data"
	kindProfile   = "connection_profile"
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to JSON file (required)")
	validateCmd.Flags().StringVar(&validateKind, "kind", kindSwissData, "Embedded schema: swiss_data or connection_profile")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema-file", "", "Validate against this schema file instead")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	err := validateFile(validateInputFile, validateKind, validateSchemaFile)
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprint(cmd.ErrOrStderr(), ve.Error())
		return fmt.Errorf("%s is invalid (%d errors)", validateInputFile, len(ve.Errors))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", validateInputFile)
	return nil
}

// validateFile checks path against a schema file or an embedded schema kind.
func validateFile(path, kind, schemaFile string) error {
	if schemaFile != "" {
		return schemas.ValidateJSON(schemaFile, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	switch kind {
	case kindSwissData:
		return schemas.ValidateSwissData(content)
	case kindProfile:
		return schemas.ValidateConnectionProfile(content)
	default:
		return fmt.Errorf("unknown schema kind %q (valid: %s, %s)", kind, kindSwissData, kindProfile)
	}
}
