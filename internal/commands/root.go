package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/athlemics/athlemics/internal/config"
	"github.com/athlemics/athlemics/internal/schedule"
	"github.com/athlemics/athlemics/internal/storage"
	"github.com/athlemics/athlemics/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "athlemics",
	Short: "A scheduling and wellness tracker for student-athletes",
	Long: `athlemics is a command-line day planner for student-athletes.
Time-block your day on an interactive timeline, track goals,
and keep a daily health log, stored locally or in the cloud.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTimeline(nil)
	},
}

// openStore loads the configuration, opens the configured backend and
// returns the ready store plus a cleanup that flushes pending writes.
func openStore() (*schedule.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger()

	var backend storage.Backend
	switch cfg.Storage.Backend {
	case config.BackendSurreal:
		backend, err = storage.OpenSurreal(cfg.Surreal, log)
	default:
		var path string
		path, err = storage.DefaultLocalPath()
		if err == nil {
			backend, err = storage.OpenLocal(path, log)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	store, err := schedule.Open(context.Background(), backend, cfg.Profile.ID, log)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}

	cleanup := func() {
		store.Flush()
		if err := backend.Close(); err != nil {
			log.Warn().Err(err).Msg("closing backend")
		}
	}
	return store, cleanup, nil
}

// withStore wraps a command function, opening the store first and
// flushing on the way out.
func withStore(fn func(*cobra.Command, []string, *schedule.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(cmd, args, store)
	}
}

// newLogger writes to ~/.athlemics/athlemics.log; the TUI owns stdout.
func newLogger() zerolog.Logger {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return zerolog.Nop()
	}
	dir := filepath.Join(homeDir, ".athlemics")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(filepath.Join(dir, "athlemics.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}

func runTimeline(args []string) error {
	store, cleanup, err := openStore()
	if err != nil {
		return err
	}
	defer cleanup()

	date, err := dateArg(args)
	if err != nil {
		return err
	}
	return tui.RunTimeline(store, date)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}
