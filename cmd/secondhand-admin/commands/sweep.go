package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/XiPingo/secondhand/cmd/secondhand-admin/output"
)

var (
	// Sweep flags
	sweepDryRun bool
)

// sweepCmd removes unreferenced images
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove images no listing or profile references",
	Long: `Scan the image directory and remove every file that no listing image and
no profile avatar references.

Examples:
  secondhand-admin sweep --dry-run    # Preview without deleting
  secondhand-admin sweep`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSweep()
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "Preview removals without deleting")
}

func runSweep() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	result, err := e.maint.SweepAssets(context.Background(), sweepDryRun)
	if err != nil {
		return err
	}

	if sweepDryRun {
		output.Section("DRY RUN - Preview")
		output.Info("%d unreferenced image(s) would be removed, %d kept", result.FilesRemoved, result.FilesKept)
		return nil
	}

	if result.FilesRemoved == 0 {
		output.Info("No unreferenced images found (%d kept)", result.FilesKept)
	} else {
		output.Success("Removed %d unreferenced image(s), %d kept", result.FilesRemoved, result.FilesKept)
	}
	if result.Errors > 0 {
		output.Warning("%d file(s) could not be removed", result.Errors)
	}
	return nil
}
