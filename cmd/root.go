package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli/handlers"
)

// skipServices marks commands that run without config or services.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "tasktime",
	Short: "Log time to tracker tasks from your git branch",
	Long: `tasktime finds the task ID in your current git branch name and logs
manual time entries to that task in the tracker.

Usage:
  tasktime                         Show the task for the current branch
  tasktime status --short          One-line status (used by the git hook)
  tasktime task [ID]               Show task details
  tasktime log 1h 30m              Log time to the current task
  tasktime history                 List submitted time entries
  tasktime token set               Store the API token
  tasktime hook install            Show the task after every checkout
  tasktime tui                     Interactive time logging panel

Time formats: 1h 30m, 1.5h, 90m, 1:30 or a plain number of minutes.
Entries are rounded to the nearest 15 minutes and capped at 8 hours.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations[skipServices]; ok {
			return nil
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if err := ensureServices(verbose); err != nil {
			// The hook must never break a checkout
			if short, _ := cmd.Flags().GetBool("short"); short && cmd == statusCmd {
				deps.Logger.Debug("status unavailable", "err", err)
				return nil
			}
			return fmt.Errorf("failed to initialize: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowStatus(cmd.Context(), deps, false)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"tasktime version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands pass to
// git and tracker calls.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
