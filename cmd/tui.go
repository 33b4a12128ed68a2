package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive time logging panel",
	Long: `Launch the interactive panel for the task of the current branch.

The Log view shows the task and validates the time as you type; rounded
and large entries ask for confirmation before they are sent. The History
view lists submitted entries.

Keyboard shortcuts:
  - Tab/Shift+Tab: Switch views
  - Enter: Accept time, then note
  - Ctrl+T: Next theme
  - Ctrl+R: Refresh
  - ?: Show help
  - q/Ctrl+C: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTUI(cmd); err != nil {
			cli.ReportError(deps, err)
		}
	},
}

// runTUI is replaced in tests
var runTUI = func(cmd *cobra.Command) error {
	return tui.Run(cmd.Context(), deps.Services)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
