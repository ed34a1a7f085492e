package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/XiPingo/secondhand/cmd/secondhand-admin/output"
)

// usersCmd groups the account commands
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
	Long: `Inspect and delete accounts.

Subcommands:
  list    - List every account
  delete  - Delete an account and cascade its listings`,
}

// usersListCmd lists all accounts
var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every account",
	Long: `List every account in the user document in stored order.

Examples:
  secondhand-admin users list
  secondhand-admin users list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsersList()
	},
}

// usersDeleteCmd deletes an account
var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account and cascade its listings",
	Long: `Delete an account by id. The account's listings are removed with it and
every favorite pointing at those listings is cleaned up. Administrator
accounts are refused.

Examples:
  secondhand-admin users delete 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUsersDelete(args[0])
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersDeleteCmd)
}

func runUsersList() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	users, err := e.admin.ListUsers(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(users)
	}

	if len(users) == 0 {
		output.Warning("No accounts found")
		return nil
	}

	// Table output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEMAIL\tNICKNAME\tPHONE\tROLE\tFAVORITES")
	_, _ = fmt.Fprintln(w, "--\t-----\t--------\t-----\t----\t---------")
	for _, u := range users {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			u.ID,
			u.Email,
			u.Nickname,
			u.Phone,
			output.Role(u.IsAdmin),
			len(u.Favorites),
		)
	}
	_ = w.Flush()

	fmt.Println()
	output.Muted("%d account(s)", len(users))
	return nil
}

func runUsersDelete(rawID string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid user id %q", rawID)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.admin.DeleteUser(context.Background(), id); err != nil {
		output.Error("Could not delete account #%d: %v", id, err)
		return err
	}

	output.Success("Deleted account #%d and its listings", id)
	return nil
}
