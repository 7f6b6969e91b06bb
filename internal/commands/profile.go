package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/schedule"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View or update your profile",
	Long: `Show the stored profile, or update fields with flags:

  athlemics profile --name "Maria Silva" --sport "Swimming"`,
	RunE: withStore(func(cmd *cobra.Command, args []string, store *schedule.Store) error {
		p := store.Profile()

		changed := false
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			p.Name = name
			changed = true
		}
		if email, _ := cmd.Flags().GetString("email"); email != "" {
			p.Email = email
			changed = true
		}
		if course, _ := cmd.Flags().GetString("course"); course != "" {
			p.Course = course
			changed = true
		}
		if sport, _ := cmd.Flags().GetString("sport"); sport != "" {
			p.Sport = sport
			changed = true
		}

		if changed {
			store.SetProfile(p)
			fmt.Println("Profile updated.")
			return nil
		}

		if p.Name == "" {
			fmt.Println("No profile set. Use --name, --email, --course, --sport to fill it in.")
			return nil
		}
		fmt.Printf("Name:   %s\n", p.Name)
		fmt.Printf("Email:  %s\n", p.Email)
		fmt.Printf("Course: %s\n", p.Course)
		fmt.Printf("Sport:  %s\n", p.Sport)
		return nil
	}),
}

func init() {
	profileCmd.Flags().String("name", "", "Full name")
	profileCmd.Flags().String("email", "", "Email address")
	profileCmd.Flags().String("course", "", "Course of study")
	profileCmd.Flags().String("sport", "", "Sport / modality")
}
