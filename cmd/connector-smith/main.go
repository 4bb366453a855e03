package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "connector-smith",
	Short: "Connector release comparison and change classification tool",
	Long: `ConnectorSmith detects and classifies functional differences between two
versioned snapshots of connector definitions, so reviewers can see what
changed in a release without manually diffing dozens of JSON files.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
