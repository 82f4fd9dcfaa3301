package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecoloop/ecoloop/internal/challenge"
	"github.com/ecoloop/ecoloop/internal/ui/theme"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Complete eco challenges",
}

var challengeCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark a challenge complete and collect its EcoCoins",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		coins, _ := cmd.Flags().GetInt("coins")
		title, _ := cmd.Flags().GetString("title")
		daily, _ := cmd.Flags().GetBool("daily")

		typ := challenge.TypeLevel
		if daily {
			typ = challenge.TypeDaily
		}

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		svc := challenge.NewService(ws.store.Users(), ws.store.Progress(), ws.store.Ledger(), logger)
		sum, err := svc.Complete(cmd.Context(), ws.user.ID, challenge.Challenge{
			LevelID:    level,
			Title:      title,
			CoinReward: coins,
			Type:       typ,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("Challenge Complete!"))
		fmt.Fprintln(out, theme.Hint.Render("Your impact is growing! 🌱"))
		fmt.Fprintf(out, "%s EcoCoins   +%d Daily Streak\n",
			theme.Coins.Render(fmt.Sprintf("+%d", sum.CoinsEarned)), sum.StreakDelta)
		if sum.AlreadyRewarded {
			fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("Level %d was already rewarded.", level)))
		}
		fmt.Fprintf(out, "Balance: %s\n", theme.Coins.Render(fmt.Sprintf("%d", sum.Balance)))
		if sum.RankChanged {
			fmt.Fprintf(out, "Rank up: %s → %s\n", sum.RankBefore, theme.Rank.Render(sum.RankAfter))
		} else {
			fmt.Fprintf(out, "Rank: %s\n", sum.RankAfter)
		}
		return nil
	},
}

func init() {
	challengeCompleteCmd.Flags().Int("level", 0, "Level id the challenge belongs to")
	challengeCompleteCmd.Flags().Int("coins", 0, "EcoCoin reward")
	challengeCompleteCmd.Flags().String("title", "", "Challenge title recorded in the wallet history")
	challengeCompleteCmd.Flags().Bool("daily", false, "Daily challenge (adds to the daily streak)")

	challengeCmd.AddCommand(challengeCompleteCmd)
}
