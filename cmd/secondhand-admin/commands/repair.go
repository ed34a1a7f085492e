package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/XiPingo/secondhand/cmd/secondhand-admin/output"
)

// repairCmd removes dangling favorites
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Remove favorites that point at missing listings",
	Long: `Remove every favorite entry that points at a listing which no longer
exists and save the user document. Run "check" first to see what would
be removed.

Examples:
  secondhand-admin repair`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepair()
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
}

func runRepair() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	changed, err := e.maint.RepairFavorites(context.Background())
	if err != nil {
		return err
	}

	if changed == 0 {
		output.Info("No dangling favorites found")
		return nil
	}

	output.Success("Cleaned dangling favorites from %d account(s)", changed)
	return nil
}
