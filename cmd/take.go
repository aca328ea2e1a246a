package cmd

import (
	"github.com/spf13/cobra"
)

var takeCmd = &cobra.Command{
	Use:   "take <test-id>",
	Short: "Go straight into a specific assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAppWithTest(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(takeCmd)
}
