package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/jnbooth/ritual/loader"
	"github.com/jnbooth/ritual/resolver"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [metadata.yaml]",
	Short: "Dump parsed metadata and the header partition",
	Long:  "Parses the metadata and dumps the resulting model and per-header units. A debugging aid for extractor authors.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := loader.LoadMetadata(args[0])
		if err != nil {
			return fmt.Errorf("loading metadata: %w", err)
		}
		spew.Dump(meta)

		idx := resolver.NewIndex(meta)
		for _, unit := range idx.Partition() {
			fmt.Printf("unit %s: %d types, %d methods\n", unit.Name, len(unit.Types), len(unit.Methods))
			if verbose {
				spew.Dump(unit)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
