package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	schemaDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "attrgate",
	Short: "Schema-driven validation and merge for typed attribute documents",
	Long: `attrgate validates annotation documents against declared attribute
schemas: unknown attributes, shape mismatches, literal kind mismatches, and
duplicate values are all reported with source positions.

Quick start:
  attrgate schemas                   # List schemas in ./schemas
  attrgate validate widget doc.yaml  # Validate a document
  attrgate serve                     # Start the validation service

Merging:
  attrgate merge widget a.yaml b.yaml`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "attrgate.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&schemaDir, "schemas", "s", "schemas", "schema declaration directory")
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
