package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli/handlers"
)

// hookCmd represents the hook command
var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git post-checkout hook",
	Long: `Manage the post-checkout hook that prints the task of the new branch
after every branch switch (tasktime status --short).`,
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the post-checkout hook",
	Long: `Install the post-checkout hook in the current repository. An existing
hook that tasktime did not write is only replaced with --force.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		handlers.InstallHook(cmd.Context(), deps, force)
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the post-checkout hook",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.UninstallHook(cmd.Context(), deps)
	},
}

var hookStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the hook is installed",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowHookStatus(cmd.Context(), deps)
	},
}

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookCmd.AddCommand(hookStatusCmd)

	hookInstallCmd.Flags().BoolP("force", "f", false, "Replace an existing hook")
}
