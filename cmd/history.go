package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/cli/handlers"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/timeutil"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List submitted time entries",
	Long: `List time entries submitted from this machine, newest first.

Entries are kept in a local journal next to the config file.

Date filters (use one):
  --period      today, yesterday, week, last-week, month, last-month
  --last N      the last N days including today
  --from/--to   dates as YYYY-MM-DD or DD/MM/YYYY, both inclusive

Examples:
  tasktime history
  tasktime history --task ABC-123 --limit 5
  tasktime history --period week
  tasktime history --from 2026-03-01 --to 2026-03-15`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		q, ok := historyQuery(cmd)
		if !ok {
			return
		}
		handlers.ShowHistory(deps, q)
	},
}

// historySummaryCmd represents the history summary command
var historySummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show time totals per task",
	Long: `Show the time logged per task together with daily totals. Takes the
same filters as history; --limit is ignored.

Examples:
  tasktime history summary --period week
  tasktime history summary --last 30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		q, ok := historyQuery(cmd)
		if !ok {
			return
		}
		handlers.ShowSummary(deps, q)
	},
}

// historyValidateCmd represents the history validate command
var historyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check journal health",
	Long:  `Validate the local journal and report any corrupted lines.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ValidateJournal(deps)
	},
}

// historyRepairCmd represents the history repair command
var historyRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Drop corrupted journal lines",
	Long: `Remove corrupted lines from the local journal. The current file is
backed up first (journal.jsonl.bak.1, keeping the last 3 backups).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		handlers.RepairJournal(deps, yes)
	},
}

// historyQuery reads the shared history flags. It reports the error and
// returns false when the date filters do not resolve.
func historyQuery(cmd *cobra.Command) (service.HistoryQuery, bool) {
	taskID, _ := cmd.Flags().GetString("task")
	limit, _ := cmd.Flags().GetInt("limit")

	var flags timeutil.RangeFlags
	flags.Period, _ = cmd.Flags().GetString("period")
	flags.From, _ = cmd.Flags().GetString("from")
	flags.To, _ = cmd.Flags().GetString("to")
	flags.Last, _ = cmd.Flags().GetInt("last")

	r, err := flags.Resolve(time.Now())
	if err != nil {
		cli.ReportError(deps, err)
		return service.HistoryQuery{}, false
	}
	return service.HistoryQuery{
		TaskID: strings.TrimSpace(taskID),
		Limit:  limit,
		Range:  r,
	}, true
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historySummaryCmd)
	historyCmd.AddCommand(historyValidateCmd)
	historyCmd.AddCommand(historyRepairCmd)

	historyCmd.PersistentFlags().StringP("task", "t", "", "Only show entries for this task")
	historyCmd.PersistentFlags().StringP("period", "p", "", "Named period (today, week, last-month, ...)")
	historyCmd.PersistentFlags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	historyCmd.PersistentFlags().String("to", "", "End date (YYYY-MM-DD or DD/MM/YYYY)")
	historyCmd.PersistentFlags().Int("last", 0, "Last N days including today")
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of entries (0 for all)")
	historyRepairCmd.Flags().BoolP("yes", "y", false, "Repair without asking")

	_ = historyCmd.RegisterFlagCompletionFunc("period", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return timeutil.Periods, cobra.ShellCompDirectiveNoFileComp
	})
}
