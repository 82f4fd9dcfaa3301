package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecoloop/ecoloop/internal/shop"
	"github.com/ecoloop/ecoloop/internal/ui/theme"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Browse the EcoLoop store and redeem EcoCoins",
}

// openShop opens the workspace and a shop seeded with the default catalog.
func openShop(cmd *cobra.Command) (*workspace, *shop.Service, error) {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return nil, nil, err
	}
	svc := shop.NewService(ws.store.Catalog(), ws.store.Users(), ws.store.Ledger(), logger)
	if _, err := svc.Seed(cmd.Context()); err != nil {
		ws.Close()
		return nil, nil, fmt.Errorf("seed catalog: %w", err)
	}
	return ws, svc, nil
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List store items (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		c := shop.Category(strings.ToLower(category))
		if !c.Valid() {
			return fmt.Errorf("unknown category %q (use symbolic, premium or virtual)", category)
		}

		ws, svc, err := openShop(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		items, err := svc.Items(cmd.Context(), c)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n", theme.Title.Render("EcoLoop Store"), theme.Hint.Render(c.DisplayName()))
		fmt.Fprintf(out, "Balance: %s EcoCoins\n\n", theme.Coins.Render(fmt.Sprintf("%d", ws.user.Coins)))

		fmt.Fprintf(out, "%-2s  %-16s  %-20s  %6s  %s\n", "", "ID", "Name", "Price", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, it := range items {
			fmt.Fprintf(out, "%-2s  %-16s  %-20s  %6d  %s\n",
				it.IconType.Icon(), it.ID, it.Name, it.Price, it.Description)
		}
		fmt.Fprintf(out, "\n%d items\n", len(items))
		return nil
	},
}

var storeRedeemCmd = &cobra.Command{
	Use:   "redeem <item-id>",
	Short: "Spend EcoCoins on a store item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, svc, err := openShop(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		receipt, err := svc.Redeem(cmd.Context(), ws.user.ID, args[0])
		n := shop.NotificationFor(receipt, err)

		out := cmd.OutOrStdout()
		if n.Kind == shop.NotifyError {
			fmt.Fprintln(out, theme.ErrorText.Render("✗ "+n.Message))
			return err
		}
		fmt.Fprintln(out, theme.SuccessText.Render("✓ "+n.Message))
		fmt.Fprintf(out, "Receipt %s · balance %s EcoCoins\n",
			receipt.ID, theme.Coins.Render(fmt.Sprintf("%d", receipt.Balance)))
		return nil
	},
}

func init() {
	storeListCmd.Flags().String("category", "", "Filter by category (symbolic, premium, virtual)")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeRedeemCmd)
}
