package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/schedule"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show the next scheduled blocks",
	Long:  "Show the next blocks from now across all days, soonest first",
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		limit, _ := cmd.Flags().GetInt("limit")

		blocks := store.Upcoming(time.Now(), limit)
		if len(blocks) == 0 {
			fmt.Println("No upcoming blocks.")
			return nil
		}

		fmt.Println("Upcoming blocks:")
		for _, b := range blocks {
			fmt.Printf("  %s %s  %s\n", b.Date, b.Start, b.Title)
		}
		return nil
	}),
}

func init() {
	upcomingCmd.Flags().IntP("limit", "n", 3, "Maximum number of blocks to show")
}
