package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/schedule"
	"github.com/athlemics/athlemics/internal/tui"
)

var dayCmd = &cobra.Command{
	Use:     "day [date]",
	Aliases: []string{"ls"},
	Short:   "List a day's blocks",
	Long:    "List the blocks scheduled on a day (default: today), with overlap columns",
	Args:    cobra.MaximumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		date, err := dateArg(args)
		if err != nil {
			return err
		}
		dateKey := schedule.FormatDateKey(date)

		blocks := store.ByDate(dateKey)
		if len(blocks) == 0 {
			fmt.Printf("No blocks on %s. Use 'athlemics add' to schedule one.\n", dateKey)
			return nil
		}

		fmt.Printf("Blocks on %s:\n\n", dateKey)
		fmt.Printf("%-10s %-13s %-9s %-6s %-30s %s\n", "ID", "TIME", "TYPE", "COL", "TITLE", "DONE")
		fmt.Println(strings.Repeat("-", 78))

		for _, p := range schedule.GroupOverlapping(blocks) {
			done := ""
			if p.Completed {
				done = "✓"
			}

			col := ""
			if p.OverlapCount > 1 {
				col = fmt.Sprintf("%d/%d", p.OverlapIndex+1, p.OverlapCount)
			}

			title := p.Title
			if len(title) > 28 {
				title = title[:25] + "..."
			}

			fmt.Printf("%-10s %-13s %-9s %-6s %-30s %s\n",
				p.ID[:8],
				p.Start+"-"+p.End,
				tui.TypeLabel(p.Type),
				col,
				title,
				done)
		}
		return nil
	}),
}
