package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/connector-smith/pkg/connector"
)

var connectorsCmd = &cobra.Command{
	Use:   "connectors <dir>",
	Short: "List connectors found under a release root",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnectors,
}

func init() {
	rootCmd.AddCommand(connectorsCmd)
}

func runConnectors(cmd *cobra.Command, args []string) error {
	names := connector.NewReader(nil).ListConnectors(args[0])
	if len(names) == 0 {
		fmt.Println("No connectors found.")
		return nil
	}

	for _, name := range names {
		fmt.Println(name)
	}
	fmt.Printf("\n%d connectors\n", len(names))
	return nil
}
