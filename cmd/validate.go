package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jnbooth/ritual/loader"
	"github.com/jnbooth/ritual/resolver"
	"github.com/jnbooth/ritual/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [metadata.yaml]",
	Short: "Check extractor metadata without generating",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	metaPath := args[0]

	if !quiet {
		fmt.Printf("Validating %s\n", metaPath)
	}

	// Load and schema-validate the metadata
	meta, err := loader.LoadMetadata(metaPath)
	if err != nil {
		return fmt.Errorf("loading metadata: %w", err)
	}

	if verbose {
		fmt.Printf("  Library: %s %s\n", meta.Library.Name, meta.Library.Version)
		fmt.Printf("  Types: %d\n", len(meta.Types))
		fmt.Printf("  Headers: %d\n", len(meta.Headers))
	}

	// Run semantic validation
	idx := resolver.NewIndex(meta)
	result := validate.Validate(meta, idx)
	if !result.IsValid() {
		return fmt.Errorf("validation failed:\n%s", result.Error())
	}

	if !quiet {
		fmt.Println("Metadata is valid")
	}
	return nil
}
