package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/models"
	"github.com/athlemics/athlemics/internal/parser"
	"github.com/athlemics/athlemics/internal/schedule"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "View or log daily health metrics",
	Long: `Show or update the wellness log for a day (default: today):

  athlemics health --sleep 7.5 --energy 8 --soreness 3 --note "easy run"`,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		dateKey := schedule.FormatDateKey(time.Now())
		if flag, _ := cmd.Flags().GetString("date"); flag != "" {
			d, err := parser.ParseDate(flag)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", flag, err)
			}
			dateKey = schedule.FormatDateKey(*d)
		}

		rec, found := store.HealthRecord(dateKey)
		rec.Date = dateKey

		changed := false
		if cmd.Flags().Changed("sleep") {
			rec.Sleep, _ = cmd.Flags().GetFloat64("sleep")
			changed = true
		}
		if cmd.Flags().Changed("energy") {
			rec.Energy, _ = cmd.Flags().GetInt("energy")
			changed = true
		}
		if cmd.Flags().Changed("soreness") {
			rec.Soreness, _ = cmd.Flags().GetInt("soreness")
			changed = true
		}
		if cmd.Flags().Changed("note") {
			rec.Note, _ = cmd.Flags().GetString("note")
			changed = true
		}

		if changed {
			if err := validateHealth(rec); err != nil {
				return err
			}
			store.SetHealthRecord(rec)
			fmt.Printf("Logged health for %s.\n", dateKey)
			return nil
		}

		if !found {
			fmt.Printf("No health entry for %s yet.\n", dateKey)
			return nil
		}
		fmt.Printf("Health on %s:\n", dateKey)
		fmt.Printf("  Sleep:    %.1f h\n", rec.Sleep)
		fmt.Printf("  Energy:   %d/10\n", rec.Energy)
		fmt.Printf("  Soreness: %d/10\n", rec.Soreness)
		if rec.Note != "" {
			fmt.Printf("  Note:     %s\n", rec.Note)
		}
		return nil
	}),
}

func validateHealth(rec models.HealthRecord) error {
	if rec.Sleep < 0 || rec.Sleep > 24 {
		return fmt.Errorf("sleep must be between 0 and 24 hours")
	}
	if rec.Energy < 0 || rec.Energy > 10 {
		return fmt.Errorf("energy must be between 0 and 10")
	}
	if rec.Soreness < 0 || rec.Soreness > 10 {
		return fmt.Errorf("soreness must be between 0 and 10")
	}
	return nil
}

func init() {
	healthCmd.Flags().String("date", "", "Day to show or update (default: today)")
	healthCmd.Flags().Float64("sleep", 0, "Hours slept")
	healthCmd.Flags().Int("energy", 0, "Energy level 1-10")
	healthCmd.Flags().Int("soreness", 0, "Muscle soreness 1-10")
	healthCmd.Flags().String("note", "", "Free-form note")
}
