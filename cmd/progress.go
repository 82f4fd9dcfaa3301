package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecoloop/ecoloop/internal/progress"
	"github.com/ecoloop/ecoloop/internal/rank"
	"github.com/ecoloop/ecoloop/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or edit level progress",
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List level progress for the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		records, err := ws.store.Progress().ForUser(cmd.Context(), ws.user.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No progress recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%5s  %-12s  %-24s  %s\n", "Level", "Status", "Rank", "Updated")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, r := range records {
			fmt.Fprintf(out, "%5d  %-12s  %-24s  %s\n",
				r.LevelID,
				progress.Status(r.Status).DisplayName(),
				rank.Label(r.LevelID),
				r.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var progressSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record the status of a level without paying a reward",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		status, _ := cmd.Flags().GetString("status")

		if level < 1 {
			return fmt.Errorf("--level must be at least 1")
		}
		if !progress.Status(status).Known() {
			return fmt.Errorf("unknown status %q (use completed, in_progress or not_started)", status)
		}

		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		err = ws.store.Progress().Upsert(cmd.Context(), store.ProgressData{
			UserID:  ws.user.ID,
			LevelID: level,
			Status:  status,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Level %d marked %s.\n", level, progress.Status(status).DisplayName())
		return nil
	},
}

func init() {
	progressSetCmd.Flags().Int("level", 0, "Level id")
	progressSetCmd.Flags().String("status", string(progress.StatusCompleted), "completed, in_progress or not_started")

	progressCmd.AddCommand(progressListCmd)
	progressCmd.AddCommand(progressSetCmd)
}
