package progctl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/verdantworks/growline/internal/progression/domain"
	"github.com/verdantworks/growline/internal/progression/service"
)

func newStandingsCommand() *cobra.Command {
	var limit int
	var offset int

	cmd := &cobra.Command{
		Use:   "standings <board>",
		Short: "Print a leaderboard's current standings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := cmd.Flags().GetString("db")
			if err != nil {
				return err
			}

			store, leaderboards, profiles, err := openRuntime(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := leaderboards.Standings(cmd.Context(), args[0], limit, offset)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no scores submitted")
				return nil
			}

			table := tablewriter.NewTable(cmd.OutOrStdout(),
				tablewriter.WithHeader([]string{"Rank", "Profile", "Score", "Updated"}),
			)
			for _, entry := range entries {
				table.Append([]string{
					strconv.Itoa(entry.Rank),
					displayName(cmd, profiles, entry),
					strconv.FormatInt(entry.Score, 10),
					entry.UpdatedAt.UTC().Format(time.RFC3339),
				})
			}
			return table.Render()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum entries to print")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip before printing")
	return cmd
}

// displayName resolves the profile's display name, falling back to the ID
// when the profile record is gone.
func displayName(cmd *cobra.Command, profiles *service.Profiles, entry domain.LeaderboardEntry) string {
	profile, err := profiles.Get(cmd.Context(), entry.ProfileID)
	if err != nil {
		return entry.ProfileID
	}
	return fmt.Sprintf("%s (%s)", profile.DisplayName, entry.ProfileID)
}
