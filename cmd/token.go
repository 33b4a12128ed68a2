package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli/handlers"
	"github.com/xolan/tasktime/internal/secret"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the tracker API token",
	Long: `Manage the API token used to authenticate with the tracker.

The token is stored in credentials.json (mode 0600) in the config
directory. ` + secret.EnvToken + ` overrides the stored token when set.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [TOKEN]",
	Short: "Store the API token",
	Long: `Store the API token. Without an argument the token is read from the
terminal without echo.

Examples:
  tasktime token set
  tasktime token set --verify`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		if len(args) == 1 {
			token = args[0]
		}
		verify, _ := cmd.Flags().GetBool("verify")
		handlers.SetToken(cmd.Context(), deps, token, verify)
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClearToken(deps)
	},
}

var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is configured",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		verify, _ := cmd.Flags().GetBool("verify")
		handlers.ShowTokenStatus(cmd.Context(), deps, verify)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenClearCmd)
	tokenCmd.AddCommand(tokenStatusCmd)

	tokenSetCmd.Flags().Bool("verify", false, "Check the token against the tracker after storing it")
	tokenStatusCmd.Flags().Bool("verify", false, "Check the token against the tracker")
}
