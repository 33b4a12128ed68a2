package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli/handlers"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log [TIME]",
	Short: "Log time to the current task",
	Long: `Log a manual time entry to the task of the current branch, or to the
task given with --task.

Without TIME you are prompted for it. Entries are rounded to the nearest
15 minutes; you are asked before a rounded or large (4h and more) entry
is submitted unless --yes is given.

Time formats:
  1h 30m, 2h, 45m     hours and minutes
  1.5h                decimal hours
  1:30                hours:minutes
  90                  plain minutes (up to 480)

Examples:
  tasktime log 1h 30m
  tasktime log 45m --note "code review"
  tasktime log 2h --task ABC-123 --yes`,
	Run: func(cmd *cobra.Command, args []string) {
		taskID, _ := cmd.Flags().GetString("task")
		note, _ := cmd.Flags().GetString("note")
		yes, _ := cmd.Flags().GetBool("yes")

		handlers.LogTime(cmd.Context(), deps, handlers.LogOptions{
			Input:   strings.Join(args, " "),
			TaskID:  taskID,
			Note:    note,
			NoteSet: cmd.Flags().Changed("note"),
			Yes:     yes,
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringP("task", "t", "", "Task ID (default: from the current branch)")
	logCmd.Flags().StringP("note", "n", "", "Note attached to the entry")
	logCmd.Flags().BoolP("yes", "y", false, "Skip confirmations and the note prompt")
}
