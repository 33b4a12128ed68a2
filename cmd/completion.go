package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(w io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletion(w) },
	"zsh":        func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) },
}

var shellNames = []string{"bash", "zsh", "fish", "powershell"}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [" + strings.Join(shellNames, "|") + "]",
	Short: "Print a shell completion script",
	Long: `Print the completion script for your shell on stdout. Task IDs are
not completed; commands, flags and --period values are.

Try it in the current session:
  source <(tasktime completion bash)
  source <(tasktime completion zsh)

Keep it, for example:
  tasktime completion bash > ~/.local/share/bash-completion/completions/tasktime
  tasktime completion fish > ~/.config/fish/completions/tasktime.fish
  tasktime completion zsh > "${fpath[1]}/_tasktime"`,
	Annotations: map[string]string{skipServices: ""},
	ValidArgs:   shellNames,
	Args:        cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion writes the script for shell to deps.Stdout.
func generateCompletion(shell string) {
	gen, ok := completionShells[shell]
	if !ok {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintf(deps.Stderr, "Supported shells: %s\n", strings.Join(shellNames, ", "))
		deps.Exit(1)
		return
	}

	if err := gen(deps.Stdout); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
	}
}
