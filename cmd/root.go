package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mindgauge",
	Short: "Psychometric assessment client",
	Long:  "MindGauge — terminal client for taking timed psychometric assessments.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("demo", false, "Run against built-in demo assessments, no backend required")
	rootCmd.PersistentFlags().String("user", "", "Student ID (overrides MINDGAUGE_USER_ID env var)")

	rootCmd.AddCommand(versionCmd)
}
