// Package progctl implements the operator CLI: leaderboard standings,
// content pack validation, and submission grant tooling.
package progctl

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdantworks/growline/internal/content"
	"github.com/verdantworks/growline/internal/progression/engine"
	"github.com/verdantworks/growline/internal/progression/service"
	"github.com/verdantworks/growline/internal/storage/sqlite"
)

// NewRootCommand builds the progctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "progctl",
		Short:         "Operate a progression deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("db", defaultDBPath(), "Path to the SQLite database file")

	root.AddCommand(newStandingsCommand())
	root.AddCommand(newContentCommand())
	root.AddCommand(newGrantCommand())
	return root
}

func defaultDBPath() string {
	if path := os.Getenv("GROWLINE_DB_PATH"); path != "" {
		return path
	}
	return "growline.db"
}

// openRuntime opens storage and builds the read-side facades the CLI uses.
func openRuntime(ctx context.Context, dbPath string) (*sqlite.Store, *service.Leaderboards, *service.Profiles, error) {
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open storage: %w", err)
	}

	idx, _, err := content.LoadActive(ctx, store)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}

	curve, err := engine.NewCurve(engine.DefaultBaseExperience, engine.DefaultGrowth, engine.DefaultLevelCap)
	if err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("build experience curve: %w", err)
	}

	stores := service.Stores{
		Profiles:     store,
		Leaderboards: store,
	}
	profiles := service.NewProfiles(stores, curve, nil)
	leaderboards := service.NewLeaderboards(stores, idx, profiles, nil)
	return store, leaderboards, profiles, nil
}
