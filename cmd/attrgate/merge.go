package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/attrgate/adapters/yamlattr"
	"github.com/artpar/attrgate/core/attr"
	"github.com/artpar/attrgate/core/diag"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <schema> <doc1.yaml> <doc2.yaml>",
	Short: "Validate two documents against one schema and merge them",
	Long: `Validate two annotation documents against the same schema and merge
them into one effective configuration. When both documents set the same
attribute the first document's value is kept and a duplicate is reported.

Examples:
  attrgate merge widget base.yaml override.yaml`,
	Args: cobra.ExactArgs(3),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	schemaName := args[0]

	decl, err := lookupSchema(schemaName)
	if err != nil {
		return err
	}

	var c diag.Collector
	populated := make([]attr.Schema, 2)
	for i, path := range args[1:] {
		nodes, err := yamlattr.ParseDocFile(path)
		if err != nil {
			return fmt.Errorf("document error: %w", err)
		}
		populated[i] = attr.MatchAll(&c, decl.Schema, nodes)
	}
	fmt.Printf("Merging %s and %s against schema %q...\n\n", args[1], args[2], schemaName)

	merger := attr.NewMerger(&c, diag.WarnOnDuplicate())
	merger.MergeSchema(populated[0], populated[1])

	return report(&c)
}
