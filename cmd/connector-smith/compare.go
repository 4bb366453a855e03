package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/connector-smith/pkg/classifier"
	"github.com/wonderfulspam/connector-smith/pkg/engine"
	"github.com/wonderfulspam/connector-smith/pkg/renderer"
)

var compareCmd = &cobra.Command{
	Use:   "compare --previous <dir> --current <dir>",
	Short: "Compare two connector release trees and classify the differences",
	Long: `Compares every connector under the previous and current root directories,
category by category, and reports each difference with a severity so the
most impactful changes surface first.`,
	RunE: runCompare,
}

var (
	previousRoot       string
	currentRoot        string
	outputFile         string
	format             string
	rulesFile          string
	includeFolderFiles bool
	concurrency        int64
)

func init() {
	compareCmd.Flags().StringVar(&previousRoot, "previous", "", "Path to the previous release's connector root")
	compareCmd.Flags().StringVar(&currentRoot, "current", "", "Path to the current release's connector root")
	compareCmd.Flags().StringVar(&outputFile, "output", "", "Output file for results (default: stdout)")
	compareCmd.Flags().StringVar(&format, "format", "table", "Output format (json, table, markdown, html)")
	compareCmd.Flags().StringVar(&rulesFile, "rules", "", "Severity rules file (YAML or JSON); defaults to the built-in table")
	compareCmd.Flags().BoolVar(&includeFolderFiles, "include-folder-files", false, "Emit per-file entries under folders that exist in only one tree")
	compareCmd.Flags().Int64Var(&concurrency, "concurrency", 0, "Max connectors compared in parallel (0 = number of CPUs)")

	compareCmd.MarkFlagRequired("previous")
	compareCmd.MarkFlagRequired("current")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	var rules []classifier.Rule
	if rulesFile != "" {
		config, err := classifier.LoadConfig(rulesFile)
		if err != nil {
			return fmt.Errorf("loading rules file '%s': %w", rulesFile, err)
		}
		rules = config.Rules
	}

	eng := engine.New(&engine.Options{
		Rules:                      rules,
		IncludeFilesOnFolderChange: includeFolderFiles,
		Concurrency:                concurrency,
	})

	reports, err := eng.Run(cmd.Context(), previousRoot, currentRoot)
	if err != nil {
		return fmt.Errorf("comparing connector trees: %w", err)
	}

	output, err := renderer.New().Render(reports, format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Printf("Results written to %s\n", outputFile)
	} else {
		fmt.Println(output)
	}

	// One-line status to stderr so it survives output redirection.
	summary := renderer.Summarize(reports)
	fmt.Fprintf(os.Stderr, "\n✓ Comparison complete: %s\n", summary)

	return nil
}
