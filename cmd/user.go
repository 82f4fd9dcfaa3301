package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecoloop/ecoloop/internal/progress"
	"github.com/ecoloop/ecoloop/internal/rank"
	"github.com/ecoloop/ecoloop/internal/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage local profiles",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		u, err := st.Users().Create(cmd.Context(), args[0])
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("profile %q already exists", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (%s)\n", u.Name, u.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles with their rank and balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		users, err := st.Users().List(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-24s  %8s\n", "Name", "Rank", "Coins")
		for _, u := range users {
			snap, err := progress.Load(cmd.Context(), st.Users(), st.Progress(), u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-20s  %-24s  %8d\n", u.Name, rank.Resolve(snap), u.Coins)
		}
		fmt.Fprintf(out, "\n%d profiles\n", len(users))
		return nil
	},
}

func init() {
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
}
