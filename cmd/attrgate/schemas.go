package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/attrgate/adapters/yamlattr"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schema declarations",
	Long: `List the schema declarations found in the schema directory, with
their attribute names.`,
	Args: cobra.NoArgs,
	RunE: runSchemas,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}

func runSchemas(cmd *cobra.Command, args []string) error {
	decls, err := yamlattr.ParseDir(schemaDir)
	if err != nil {
		return fmt.Errorf("schema error: %w", err)
	}
	if len(decls) == 0 {
		fmt.Printf("No schemas found in %s\n", schemaDir)
		return nil
	}

	fmt.Printf("Schemas in %s:\n\n", schemaDir)
	for _, d := range decls {
		fmt.Printf("  %s", d.Name)
		if d.Description != "" {
			fmt.Printf(" - %s", d.Description)
		}
		fmt.Println()
		for _, node := range d.Schema {
			fmt.Printf("    %s\n", node.Name)
		}
	}
	return nil
}
