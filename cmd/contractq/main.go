package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/contractq/cmd/contractq/commands"
	"github.com/teranos/contractq/logger"
)

var rootCmd = &cobra.Command{
	Use:   "contractq",
	Short: "contractq - rule-based query classification for contracts and parts",
	Long: `contractq - classify free-text contract and parts questions.

Each query is normalized, spell-corrected, tokenized and routed to a
domain (CONTRACTS, PARTS, HELP) with an action, the extracted
identifiers, filters and the columns to display.

Available commands:
  classify - Classify one query
  batch    - Classify queries from a file
  diagnose - Show what every pipeline stage produced
  serve    - Start the HTTP and WebSocket server
  history  - List recent journal entries
  stats    - Summarize the journal
  am       - Show configuration ("I am")
  version  - Show build information

Examples:
  contractq classify "contracts for customer number 897654"
  contractq classify --format json "show parts for contract 123456"
  contractq batch --file queries.txt
  contractq serve --port 8787`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Output of am show and version must stay parseable
		if cmd.Name() == "show" || cmd.Name() == "version" {
			return nil
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		return commands.InitLogging(verbosity)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (-v info, -vv debug)")

	rootCmd.AddCommand(commands.ClassifyCmd)
	rootCmd.AddCommand(commands.BatchCmd)
	rootCmd.AddCommand(commands.DiagnoseCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.StatsCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
