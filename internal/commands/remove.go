package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/schedule"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a block",
	Long: `Remove one block, a whole repeating series, or everything from a
date forward.

  athlemics remove <id>           delete just this block
  athlemics remove <id> --series  delete every occurrence in the series
  athlemics remove <id> --from    delete this and every later occurrence

--from on a non-repeating block falls back to grouping by title: every
later block with the same title is removed too.`,
	Args: cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		block, ok := store.FindByPrefix(args[0])
		if !ok {
			return fmt.Errorf("no unique block matches id %q (try 'athlemics day' for ids)", args[0])
		}

		series, _ := cmd.Flags().GetBool("series")
		from, _ := cmd.Flags().GetBool("from")

		switch {
		case series && from:
			return fmt.Errorf("--series and --from are mutually exclusive")

		case series:
			if block.RepeatID == "" {
				return fmt.Errorf("\"%s\" is not part of a repeating series", block.Title)
			}
			store.RemoveAllInSeries(block.RepeatID)
			fmt.Printf("Removed every occurrence of \"%s\"\n", block.Title)

		case from:
			store.RemoveFromDateForward(block)
			fmt.Printf("Removed \"%s\" from %s onward\n", block.Title, block.Date)

		default:
			store.Remove(block.ID)
			fmt.Printf("Removed \"%s\" on %s\n", block.Title, block.Date)
		}
		return nil
	}),
}

func init() {
	removeCmd.Flags().BoolP("series", "s", false, "Remove every block in the repeating series")
	removeCmd.Flags().BoolP("from", "f", false, "Remove this and every later occurrence")
}
