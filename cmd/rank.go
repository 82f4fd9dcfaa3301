package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ecoloop/ecoloop/internal/progress"
	"github.com/ecoloop/ecoloop/internal/rank"
	"github.com/ecoloop/ecoloop/internal/ui/theme"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the rank earned by your completed levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		var user *progress.User

		if path, _ := cmd.Flags().GetString("file"); path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			// A bad snapshot still gets a rank: the default one.
			user, err = progress.Decode(raw)
			if err != nil {
				logger.Warn("ignoring invalid snapshot", zap.String("file", path), zap.Error(err))
				user = nil
			}
		} else {
			ws, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer ws.Close()

			user, err = progress.Load(cmd.Context(), ws.store.Users(), ws.store.Progress(), ws.user.ID)
			if err != nil {
				return err
			}
		}

		res := rank.Evaluate(user)
		if !res.Mapped {
			logger.Warn("highest completed level has no rank tier",
				zap.Int("level_id", res.LevelID), zap.String("fallback", res.Label))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Rank.Render(res.Label))
		if res.HasCompleted {
			fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("Highest completed level: %d", res.LevelID)))
		} else {
			fmt.Fprintln(out, theme.Hint.Render("Complete a challenge to earn your first rank."))
		}
		return nil
	},
}

var rankTiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List every rank and the level that unlocks it",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%5s  %s\n", "Level", "Rank")
		fmt.Fprintf(out, "%5s  %s\n", "-", rank.DefaultLabel)
		for _, t := range rank.Tiers() {
			fmt.Fprintf(out, "%5d  %s\n", t.LevelID, t.Label)
		}
	},
}

func init() {
	rankCmd.Flags().String("file", "", "Resolve the rank for a JSON user snapshot instead of the stored profile")
	rankCmd.AddCommand(rankTiersCmd)
}
