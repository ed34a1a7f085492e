package commands

import (
	"github.com/spf13/cobra"

	"github.com/XiPingo/secondhand/cmd/secondhand-admin/output"
)

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		output.Primary("secondhand-admin %s", Version)
		output.Muted("build time: %s", BuildTime)
		output.Muted("git commit: %s", GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
