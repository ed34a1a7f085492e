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

// productsCmd groups the listing commands
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage listings",
	Long: `Inspect and delete listings.

Subcommands:
  list    - List every listing
  delete  - Delete a listing and clean up favorites`,
}

// productsListCmd lists all listings
var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every listing",
	Long: `List every listing in the product document in stored order.

Examples:
  secondhand-admin products list
  secondhand-admin products list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProductsList()
	},
}

// productsDeleteCmd deletes a listing
var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a listing and clean up favorites",
	Long: `Delete a listing by id. Every favorite pointing at the listing is removed
from the user document.

Examples:
  secondhand-admin products delete 7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProductsDelete(args[0])
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd, productsDeleteCmd)
}

func runProductsList() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()

	products, err := e.admin.ListProducts(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(products)
	}

	if len(products) == 0 {
		output.Warning("No listings found")
		return nil
	}

	// Table output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPRICE\tSELLER\tCATEGORY\tCOMMENTS")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t------\t--------\t--------")
	for _, p := range products {
		seller := fmt.Sprintf("#%d", p.SellerID)
		if u, err := e.users.GetByID(ctx, p.SellerID); err == nil {
			seller = u.DisplayName()
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			p.ID,
			p.Name,
			output.Price(p.Price),
			seller,
			p.Category,
			len(p.Comments),
		)
	}
	_ = w.Flush()

	fmt.Println()
	output.Muted("%d listing(s)", len(products))
	return nil
}

func runProductsDelete(rawID string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid product id %q", rawID)
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.close()

	if err := e.admin.DeleteProduct(context.Background(), id); err != nil {
		output.Error("Could not delete listing #%d: %v", id, err)
		return err
	}

	output.Success("Deleted listing #%d", id)
	return nil
}
