package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/schedule"
	"github.com/athlemics/athlemics/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit one block",
	Long: `Edit a single block in the interactive form.

Edits never cascade: changing one occurrence of a repeating block leaves
the rest of the series untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		block, ok := store.FindByPrefix(args[0])
		if !ok {
			return fmt.Errorf("no unique block matches id %q (try 'athlemics day' for ids)", args[0])
		}

		prefill := &tui.FormResult{
			Template: schedule.Template{
				Title: block.Title,
				Desc:  block.Desc,
				Start: block.Start,
				End:   block.End,
				Type:  block.Type,
			},
		}
		result, ok, err := tui.RunBlockForm(prefill, true)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}

		store.Update(block.ID, result.Template)
		fmt.Printf("Updated \"%s\"\n", result.Template.Title)
		return nil
	}),
}
