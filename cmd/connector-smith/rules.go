package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/connector-smith/pkg/classifier"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage severity classification rules",
	Long:  `Manage the ordered rule table that assigns severities to detected changes.`,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Generate a rules file with the built-in table",
	Long: `Write the built-in severity rule table to a file as a starting point for
customization. If no file is specified, creates .connector-smith.yml in the
current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRulesInit,
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a rules file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesValidate,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in severity rules in evaluation order",
	RunE:  runRulesList,
}

func init() {
	rulesCmd.AddCommand(rulesInitCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesInit(cmd *cobra.Command, args []string) error {
	outputFile := ".connector-smith.yml"
	if len(args) > 0 {
		outputFile = args[0]
	}

	if _, err := os.Stat(outputFile); err == nil {
		return fmt.Errorf("rules file %s already exists", outputFile)
	}

	if err := classifier.SaveConfig(classifier.DefaultConfig(), outputFile); err != nil {
		return fmt.Errorf("writing rules file: %w", err)
	}

	fmt.Printf("Rules file created: %s\n", outputFile)
	return nil
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	config, err := classifier.LoadConfig(args[0])
	if err != nil {
		return fmt.Errorf("invalid rules file: %w", err)
	}

	fmt.Printf("Rules file is valid (%d rules)\n", len(config.Rules))
	return nil
}

func runRulesList(cmd *cobra.Command, args []string) error {
	fmt.Println("Severity rules (first match wins; auth category is always P0):")
	fmt.Println()
	for i, rule := range classifier.DefaultRules() {
		fmt.Printf("  %2d. [%s] %s\n", i+1, rule.Severity, rule.Pattern)
	}
	fmt.Println()
	fmt.Println("Unmatched changes default to P2.")
	return nil
}
