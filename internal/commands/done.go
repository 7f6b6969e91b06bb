package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/schedule"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a block's completed state",
	Long:  "Toggle completion of one block, addressed by id or unique id prefix",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		block, ok := store.FindByPrefix(args[0])
		if !ok {
			return fmt.Errorf("no unique block matches id %q (try 'athlemics day' for ids)", args[0])
		}

		store.ToggleCompleted(block.ID)

		if block.Completed {
			fmt.Printf("Reopened \"%s\"\n", block.Title)
		} else {
			fmt.Printf("Completed \"%s\"\n", block.Title)
		}
		return nil
	}),
}
