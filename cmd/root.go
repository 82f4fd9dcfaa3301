package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ecoloop/ecoloop/internal/config"
	"github.com/ecoloop/ecoloop/internal/logging"
	"github.com/ecoloop/ecoloop/internal/store"
)

var (
	cfg         *config.Config
	logger      = zap.NewNop()
	closeLogger = func() {}
)

var rootCmd = &cobra.Command{
	Use:          "ecoloop",
	Short:        "Track your eco progress and spend EcoCoins",
	Long:         "EcoLoop: complete eco challenges, climb the ranks and redeem EcoCoins for real-world impact.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c

		l, cleanup, err := logging.NewLogger(logging.Config{
			FilePath: cfg.LogFile,
			Level:    cfg.LogLevel,
			Env:      cfg.Env,
		})
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger, closeLogger = l, cleanup
		return nil
	},
}

func Execute() error {
	defer func() {
		closeLogger()
		logger, closeLogger = zap.NewNop(), func() {}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ECOLOOP_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Profile name to act as (overrides ECOLOOP_USER env var)")

	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ECOLOOP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveUserName returns the --user flag or the configured profile name.
func resolveUserName(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if cfg != nil {
		return cfg.User
	}
	return "default"
}

// workspace bundles the open store and the acting user for one command.
type workspace struct {
	store *store.Store
	user  *store.UserRecord
}

// openWorkspace opens the store and ensures the acting user exists.
func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	name := resolveUserName(cmd)
	u, err := st.Users().Ensure(cmd.Context(), name)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load user %q: %w", name, err)
	}
	logger.Debug("workspace open", zap.String("db", dbPath), zap.String("user", u.Name))
	return &workspace{store: st, user: u}, nil
}

func (w *workspace) Close() error {
	return w.store.Close()
}
