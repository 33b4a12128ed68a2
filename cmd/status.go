package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli/handlers"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the task for the current branch",
	Long: `Show the branch, the task ID found in its name and the task details
from the tracker.

With --short a single line is printed and the command never fails, which
makes it safe to run from the post-checkout hook.

Examples:
  tasktime status
  tasktime status --short`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if deps.Services == nil {
			return
		}
		handlers.ShowStatus(cmd.Context(), deps, short)
	},
}

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task [ID]",
	Short: "Show task details",
	Long: `Show the details of a task. Without an ID the task of the current
branch is shown.

Examples:
  tasktime task
  tasktime task ABC-123 --output json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var id string
		if len(args) == 1 {
			id = args[0]
		}
		format, _ := cmd.Flags().GetString("output")
		if format == "" {
			format = deps.Services.Config.Get().DefaultOutputFormat
		}
		handlers.ShowTask(cmd.Context(), deps, id, format)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(taskCmd)

	statusCmd.Flags().BoolP("short", "s", false, "Print a single line and never fail")
	taskCmd.Flags().StringP("output", "o", "", "Output format: text, json or yaml (default from config)")
}
