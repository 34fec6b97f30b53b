package commands

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/contractq/journal"
	"github.com/teranos/contractq/nlq/types"
	"github.com/teranos/contractq/sym"
)

// HistoryCmd lists recent journal entries
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: sym.DB + " List recent classifications",
	Long: sym.DB + ` history - List recent classifications from the journal

Requires journal.enabled = true.

Examples:
  contractq history
  contractq history --limit 50 --format json`,
	RunE: runHistory,
}

// StatsCmd summarizes the journal
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: sym.DB + " Summarize the journal",
	Long: sym.DB + ` stats - Count journal entries per domain with mean confidence

Examples:
  contractq stats
  contractq stats --format yaml`,
	RunE: runStats,
}

var (
	historyLimit  int
	historyFormat string
	statsFormat   string
)

func init() {
	HistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", journal.DefaultLimit, "Number of entries to show")
	HistoryCmd.Flags().StringVarP(&historyFormat, "format", "f", formatTable, "Output format: table, json, yaml")
	StatsCmd.Flags().StringVarP(&statsFormat, "format", "f", formatTable, "Output format: table, json, yaml")
}

func runHistory(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	return writeEntries(cmd, entries)
}

func writeEntries(cmd *cobra.Command, entries []journal.Entry) error {
	out := cmd.OutOrStdout()
	if historyFormat != formatTable {
		return writeValue(out, entries, historyFormat)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No classifications recorded")
		return nil
	}

	rows := pterm.TableData{{"When", "Domain", "Action", "Conf", "Query"}}
	for _, e := range entries {
		q := e.Query
		if e.CacheHit {
			q += " " + sym.Cache
		}
		rows = append(rows, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			sym.Label(string(e.Domain)),
			e.Action,
			fmt.Sprintf("%.2f", e.Confidence),
			q,
		})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	summary, err := j.Summary(cmd.Context())
	if err != nil {
		return err
	}
	return writeSummary(cmd, summary)
}

func writeSummary(cmd *cobra.Command, s *journal.Summary) error {
	out := cmd.OutOrStdout()
	if statsFormat != formatTable {
		return writeValue(out, s, statsFormat)
	}

	domains := make([]types.Domain, 0, len(s.ByDomain))
	for d := range s.ByDomain {
		domains = append(domains, d)
	}
	sort.Slice(domains, func(a, b int) bool { return domains[a] < domains[b] })

	rows := pterm.TableData{{"Domain", "Count"}}
	for _, d := range domains {
		rows = append(rows, []string{sym.Label(string(d)), fmt.Sprintf("%d", s.ByDomain[d])})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "%d classifications, mean confidence %.2f\n", s.Total, s.MeanConfidence)
	return nil
}
