package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/parser"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [date]",
	Short: "Open the interactive day timeline",
	Long: `Open the interactive timeline for a day (default: today).

Navigate days with ←/→, drag blocks with the mouse to reschedule them
in 15-minute steps, and add, edit or delete blocks in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimeline(args)
	},
}

// dateArg resolves an optional date argument, defaulting to today.
func dateArg(args []string) (time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if len(args) == 0 {
		return today, nil
	}
	date, err := parser.ParseDate(args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", args[0], err)
	}
	return *date, nil
}
