package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jnbooth/ritual/gen"
	"github.com/jnbooth/ritual/loader"
	"github.com/jnbooth/ritual/resolver"
	"github.com/jnbooth/ritual/validate"
)

var (
	genOutput string
	genPlace  string
	genDryRun bool
	genClean  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [metadata.yaml]",
	Short: "Generate the C wrapper headers and sources",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "./qtcw", "Output directory")
	generateCmd.Flags().StringVar(&genPlace, "place", "both", "Allocation place variants to generate: heap, stack or both")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show what would be generated without writing")
	generateCmd.Flags().BoolVar(&genClean, "clean", false, "Remove previously generated files first")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	metaPath := args[0]

	place := gen.PlaceMode(genPlace)
	if !place.Valid() {
		return fmt.Errorf("invalid --place %q: must be heap, stack or both", genPlace)
	}

	if !quiet {
		fmt.Printf("Generating from %s\n", metaPath)
	}

	// Load and schema-validate
	meta, err := loader.LoadMetadata(metaPath)
	if err != nil {
		return fmt.Errorf("loading metadata: %w", err)
	}

	idx := resolver.NewIndex(meta)

	// Semantic validation
	result := validate.Validate(meta, idx)
	if !result.IsValid() {
		return fmt.Errorf("validation failed:\n%s", result.Error())
	}

	// Clean output directory if requested
	if genClean {
		if !quiet {
			fmt.Printf("Cleaning %s\n", genOutput)
		}
		if !genDryRun {
			os.RemoveAll(genOutput)
		}
	}

	// Create generation context
	ctx := gen.NewContext(meta, idx, genOutput)
	ctx.Place = place
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.DryRun = genDryRun

	// Run generators and collect output
	var allFiles []*gen.OutputFile
	for _, name := range gen.DefaultGenerators() {
		g, ok := gen.Get(name)
		if !ok {
			return fmt.Errorf("generator %s is not registered", name)
		}

		if verbose {
			fmt.Printf("  Running generator: %s\n", g.Name())
		}

		files, err := g.Generate(ctx)
		if err != nil {
			return fmt.Errorf("generator %s failed: %w", name, err)
		}
		allFiles = append(allFiles, files...)
	}

	// Write output files
	var written, skipped int
	for _, f := range allFiles {
		outPath := filepath.Join(genOutput, f.Path)

		// Scaffold files are only written when they don't already exist.
		if f.Scaffold {
			if _, err := os.Stat(outPath); err == nil {
				skipped++
				if verbose {
					fmt.Printf("  Scaffold exists, skipped: %s\n", outPath)
				}
				continue
			}
		}

		if genDryRun {
			fmt.Printf("  Would write: %s\n", outPath)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", outPath, err)
		}
		if err := os.WriteFile(outPath, f.Content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		written++
		if verbose {
			fmt.Printf("  Wrote: %s\n", outPath)
		}
	}

	if !quiet {
		skippedMsg := ""
		if skipped > 0 {
			skippedMsg = fmt.Sprintf(", %d scaffold file(s) preserved", skipped)
		}
		fmt.Printf("Generated %d files in %s%s\n", written, genOutput, skippedMsg)
	}
	return nil
}
