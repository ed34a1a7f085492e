package commands

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/XiPingo/secondhand/cmd/secondhand-admin/output"
)

// checkCmd verifies document consistency
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the documents for broken references",
	Long: `Scan both documents and report favorites that point at missing listings,
listings whose seller account is gone, and comments left by deleted
accounts. Nothing is modified.

Examples:
  secondhand-admin check
  secondhand-admin check --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	report, err := e.maint.Verify(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	output.Section("Document check")
	output.Info("%d account(s), %d administrator(s)", report.Users, report.Admins)
	output.Info("%d listing(s)", report.Products)

	for _, ref := range report.DanglingFavorites {
		output.Warning("Account #%d favorites missing listing #%d", ref.UserID, ref.ProductID)
	}
	for _, id := range report.OrphanProducts {
		output.Warning("Listing #%d has no seller account", id)
	}
	if report.OrphanComments > 0 {
		output.Muted("%d comment(s) from deleted accounts (kept, nicknames are snapshots)", report.OrphanComments)
	}

	if report.Clean() {
		output.Success("Documents are consistent")
		return nil
	}

	if len(report.DanglingFavorites) > 0 {
		output.Info("Run `secondhand-admin repair` to remove dangling favorites")
	}
	return nil
}
