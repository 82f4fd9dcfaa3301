package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag in the tree to its default; the command
// tree is package state shared by all runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with args against a fresh database.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ECOLOOP_LOG_LEVEL", "error")

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := Execute()
	return out.String(), err
}

func TestRankFromSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ecoloop.db")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"two completed", `{"progress":[{"level_id":2,"status":"completed"},{"level_id":1,"status":"completed"}]}`, "Climate Champion"},
		{"fraction zero", `{"progress":[{"level_id":2.0,"status":"completed"}]}`, "Climate Champion"},
		{"exponent", `{"progress":[{"level_id":5e0,"status":"completed"}]}`, "Climate Aware Advocate"},
		{"beyond int", `{"progress":[{"level_id":99999999999999999999,"status":"completed"}]}`, "Eco Beginner"},
		{"empty", `{"progress":[]}`, "Eco Scout"},
		{"null", `null`, "Eco Scout"},
		{"malformed", `{"progress":"lots"}`, "Eco Scout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			out, err := run(t, db, "rank", "--file", path)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestChallengeThenRedeem(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ecoloop.db")

	out, err := run(t, db, "--user", "ada", "challenge", "complete", "--level", "3", "--coins", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Resource Guardian")

	out, err = run(t, db, "--user", "ada", "store", "redeem", "plant-a-tree")
	require.Error(t, err)
	assert.Contains(t, out, "Insufficient EcoCoins!")

	out, err = run(t, db, "--user", "ada", "store", "redeem", "green-badge")
	require.NoError(t, err)
	assert.Contains(t, out, "Redeemed Green Badge!")

	out, err = run(t, db, "--user", "ada", "rank")
	require.NoError(t, err)
	assert.Contains(t, out, "Resource Guardian")
}
