package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/schedule"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List and manage goals",
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		showCompleted, _ := cmd.Flags().GetBool("completed")

		goals := store.Goals(showCompleted)
		if len(goals) == 0 {
			if showCompleted {
				fmt.Println("No completed goals yet.")
			} else {
				fmt.Println("No goals set. Use 'athlemics goals add \"...\"' to create one.")
			}
			return nil
		}

		for _, g := range goals {
			mark := "○"
			if g.Done() {
				mark = "●"
			}
			fmt.Printf("%s %-10s %s\n", mark, g.ID[:8], g.Title)
			if g.Description != "" {
				fmt.Printf("             %s\n", g.Description)
			}
		}
		return nil
	}),
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Args:  cobra.MinimumNArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		description, _ := cmd.Flags().GetString("description")

		goal := store.AddGoal(strings.Join(args, " "), description)
		if goal == nil {
			return fmt.Errorf("goal needs a title")
		}
		fmt.Printf("Added goal \"%s\"\n", goal.Title)
		return nil
	}),
}

var goalsDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a goal's completed state",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		goal, ok := findGoalByPrefix(store, args[0])
		if !ok {
			return fmt.Errorf("no unique goal matches id %q", args[0])
		}
		store.ToggleGoalCompleted(goal.ID)
		if goal.Done() {
			fmt.Printf("Reopened goal \"%s\"\n", goal.Title)
		} else {
			fmt.Printf("Completed goal \"%s\"\n", goal.Title)
		}
		return nil
	}),
}

var goalsRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a goal",
	Args:    cobra.ExactArgs(1),
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		goal, ok := findGoalByPrefix(store, args[0])
		if !ok {
			return fmt.Errorf("no unique goal matches id %q", args[0])
		}
		store.RemoveGoal(goal.ID)
		fmt.Printf("Removed goal \"%s\"\n", goal.Title)
		return nil
	}),
}

func findGoalByPrefix(store *schedule.Store, prefix string) (models.Goal, bool) {
	var hit models.Goal
	count := 0
	for _, completed := range []bool{false, true} {
		for _, goal := range store.Goals(completed) {
			if strings.HasPrefix(goal.ID, prefix) {
				hit = goal
				count++
			}
		}
	}
	return hit, count == 1
}

func init() {
	goalsCmd.Flags().BoolP("completed", "c", false, "Show completed goals instead")
	goalsAddCmd.Flags().StringP("description", "d", "", "Goal description")
	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsDoneCmd)
	goalsCmd.AddCommand(goalsRemoveCmd)
}
