package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/schedule"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show today's remaining tasks and meetings",
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		blocks := store.TasksToday(time.Now())
		if len(blocks) == 0 {
			fmt.Println("No tasks or meetings left today.")
			return nil
		}

		fmt.Println("Today:")
		for _, b := range blocks {
			suffix := ""
			if b.Type == models.TypeMeeting {
				suffix = " (meeting)"
			}
			fmt.Printf("  %s  %s%s\n", b.Start, b.Title, suffix)
		}
		return nil
	}),
}
