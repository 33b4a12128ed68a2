package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display configuration settings",
	Long: `Display the effective configuration and the config file location.

tasktime works without a config file except for the tracker URL, which
comes from api.base_url or TASKTIME_API_URL.

Configuration file location:
  ~/.config/tasktime/config.toml          Linux
  ~/Library/Application Support/tasktime  macOS
  %APPDATA%\tasktime\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(deps)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(deps)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
