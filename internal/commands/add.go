package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/parser"
	"github.com/athlemics/athlemics/internal/schedule"
	"github.com/athlemics/athlemics/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [block description]",
	Short: "Add a block to the schedule",
	Long: `Add a new time block, either interactively or with quick syntax.

Modes:
  Interactive: athlemics add (no arguments)
  Quick: athlemics add "Morning swim @train 07:00-08:30"

Quick syntax:
  HH:MM-HH:MM   - Time range (required)
  @type         - study, train, class, task, meeting (default: study)
  *repeat       - every_day, weekdays, weekly, monthly, yearly
  on:date       - today, tomorrow, YYYY-MM-DD, dd/mm/yyyy, +Xdays`,
	Args: cobra.ArbitraryArgs,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		if len(args) == 0 {
			return runInteractiveAdd(store)
		}

		parsed := parser.ParseBlock(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			return fmt.Errorf("could not parse block: %s", strings.Join(parsed.Errors, "; "))
		}

		baseDate := time.Now()
		if parsed.Date != nil {
			baseDate = *parsed.Date
		}
		if date, _ := cmd.Flags().GetString("on"); date != "" {
			d, err := parser.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
			baseDate = *d
		}

		tmpl := schedule.Template{
			Title: parsed.Title,
			Desc:  parsed.Desc,
			Start: parsed.Start,
			End:   parsed.End,
			Type:  parsed.Type,
		}
		created := store.Add(tmpl, parsed.Repeat, baseDate)
		if len(created) == 0 {
			return fmt.Errorf("block was rejected: check the title and time range")
		}

		printCreated(created)
		return nil
	}),
}

// runInteractiveAdd opens the form TUI and applies the result.
func runInteractiveAdd(store *schedule.Store) error {
	result, ok, err := tui.RunBlockForm(nil, false)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	created := store.Add(result.Template, result.Repeat, time.Now())
	if len(created) == 0 {
		return fmt.Errorf("block was rejected: check the title and time range")
	}
	printCreated(created)
	return nil
}

func printCreated(created []models.Block) {
	first := created[0]
	if len(created) == 1 {
		fmt.Printf("Added \"%s\" on %s, %s-%s\n", first.Title, first.Date, first.Start, first.End)
		return
	}
	last := created[len(created)-1]
	fmt.Printf("Added \"%s\" ×%d, %s through %s, %s-%s\n",
		first.Title, len(created), first.Date, last.Date, first.Start, first.End)
}

func init() {
	addCmd.Flags().StringP("on", "o", "", "Base date: today, tomorrow, YYYY-MM-DD, dd/mm/yyyy, +Xdays")
}
