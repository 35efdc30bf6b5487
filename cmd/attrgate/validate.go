package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/attrgate/adapters/yamlattr"
	"github.com/artpar/attrgate/core/attr"
	"github.com/artpar/attrgate/core/diag"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema> <document.yaml>",
	Short: "Validate an annotation document against a schema",
	Long: `Validate a YAML annotation document against a declared schema.

Every problem in the document is reported from one pass: unknown attributes,
shape mismatches, literal kind mismatches, and duplicate values. The command
exits non-zero when the pass contains errors.

Examples:
  attrgate validate widget doc.yaml
  attrgate validate --schemas /etc/attrgate/schemas widget doc.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaName, docPath := args[0], args[1]

	decl, err := lookupSchema(schemaName)
	if err != nil {
		return err
	}

	nodes, err := yamlattr.ParseDocFile(docPath)
	if err != nil {
		return fmt.Errorf("document error: %w", err)
	}
	fmt.Printf("Validating %s against schema %q...\n\n", docPath, schemaName)

	var c diag.Collector
	attr.MatchAll(&c, decl.Schema, nodes)

	return report(&c)
}

// lookupSchema loads the schema directory and returns the named declaration.
func lookupSchema(name string) (yamlattr.Decl, error) {
	decls, err := yamlattr.ParseDir(schemaDir)
	if err != nil {
		return yamlattr.Decl{}, fmt.Errorf("schema error: %w", err)
	}
	for _, d := range decls {
		if d.Name == name {
			return d, nil
		}
	}
	return yamlattr.Decl{}, fmt.Errorf("no schema named %q in %s", name, schemaDir)
}

// report prints collected diagnostics and a summary line, and returns a
// non-nil error when the pass failed.
func report(c *diag.Collector) error {
	for _, d := range c.Diagnostics() {
		fmt.Println("  " + d.String())
	}
	if c.Len() > 0 {
		fmt.Println()
	}

	if c.HasErrors() {
		fmt.Printf("  %s %d error(s), %d warning(s)\n", crossMark, c.ErrorCount(), c.WarningCount())
		return fmt.Errorf("validation failed")
	}
	if c.WarningCount() > 0 {
		fmt.Printf("  %s Valid with %d warning(s)\n", checkMark, c.WarningCount())
		return nil
	}
	fmt.Printf("  %s Valid\n", checkMark)
	return nil
}
