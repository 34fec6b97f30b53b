package commands

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/logger"
	"github.com/teranos/contractq/nlq"
)

// BatchCmd classifies every query in a file
var BatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify queries from a file",
	Long: `batch - Classify queries from a file concurrently

Files ending in .yaml or .yml hold a list of strings. Any other file
holds one query per line; blank lines and lines starting with # are
skipped. Results keep the file order.

Examples:
  contractq batch --file queries.txt
  contractq batch --file queries.yaml --format json --concurrency 16`,
	RunE: runBatch,
}

var (
	batchFile        string
	batchFormat      string
	batchConcurrency int
	batchNoCache     bool
)

func init() {
	BatchCmd.Flags().StringVar(&batchFile, "file", "", "File of queries (.txt or .yaml)")
	BatchCmd.Flags().StringVarP(&batchFormat, "format", "f", formatTable, "Output format: table, json, yaml")
	BatchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", nlq.DefaultBatchConcurrency, "Queries classified in parallel")
	BatchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "Bypass the result cache")
	_ = BatchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	queries, err := readQueries(batchFile)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return errors.WithHintf(errors.Newf("no queries in %s", batchFile), "put one query per line")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, !batchNoCache)
	if err != nil {
		return errors.Wrap(err, "build classifier")
	}
	defer p.Close()

	results, err := p.classifier.ClassifyBatch(cmd.Context(), queries, batchConcurrency)
	if err != nil {
		return err
	}
	p.record(cmd.Context(), results...)
	logger.Infow("Batch classified", logger.FieldFile, batchFile, logger.FieldBatchSize, len(results))

	out := cmd.OutOrStdout()
	if batchFormat != formatTable {
		return writeValue(out, results, batchFormat)
	}
	for i := range results {
		fmt.Fprintf(out, "%s  %s\n", resultLine(results[i]), queries[i])
	}
	snap := p.metrics.Snapshot()
	fmt.Fprintln(out, pterm.Gray(fmt.Sprintf("%d queries, %d errors, mean confidence %.2f",
		snap.TotalQueries, snap.Errors, snap.MeanConfidence)))
	return nil
}

// readQueries loads queries from a .yaml list or a line-per-query file
func readQueries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var queries []string
		if err := yaml.Unmarshal(data, &queries); err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "decode %s", path),
				"the file must be a YAML list of strings",
			)
		}
		return queries, nil
	}

	var queries []string
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "scan %s", path)
	}
	return queries, nil
}
