package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "coursedates",
	Short: "coursedates fills in missing course start and end dates from activity logs",
	Long: `Coursedates walks the course catalog and guesses start/ end dates for
courses that never had them set using their activity log history
(dry run by default, writes only with --update)`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
