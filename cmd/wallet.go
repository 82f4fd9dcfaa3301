package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecoloop/ecoloop/internal/store"
	"github.com/ecoloop/ecoloop/internal/ui/theme"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show EcoCoin balance and history",
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the current EcoCoin balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "%s EcoCoins\n", theme.Coins.Render(fmt.Sprintf("%d", ws.user.Coins)))
		return nil
	},
}

var walletHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent EcoCoin rewards and redemptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		events, err := ws.store.Ledger().Events(cmd.Context(), ws.user.ID, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No EcoCoin activity yet.")
			return nil
		}

		fmt.Fprintf(out, "%6s  %-16s  %-9s  %7s  %s\n", "Seq", "When", "Kind", "Coins", "Reason")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, e := range events {
			fmt.Fprintf(out, "%6d  %-16s  %-9s  %+7d  %s\n",
				e.Sequence, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Kind, e.Delta, e.Reason)
		}
		return nil
	},
}

func init() {
	walletHistoryCmd.Flags().Int("limit", 20, "Maximum entries to show (0 = all)")

	walletCmd.AddCommand(walletBalanceCmd)
	walletCmd.AddCommand(walletHistoryCmd)
}
