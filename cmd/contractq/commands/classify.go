package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/nlq/types"
	"github.com/teranos/contractq/sym"
)

// ClassifyCmd classifies one query given as arguments
var ClassifyCmd = &cobra.Command{
	Use:   "classify <query...>",
	Short: sym.Contracts + " Classify a query",
	Long: sym.Contracts + ` classify - Classify a contract, parts or help query

All arguments are joined into one query.

Examples:
  contractq classify contracts for customer number 897654
  contractq classify --format json "show parts for contract 123456"
  contractq classify --format yaml "shw contrct 12345"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

var (
	classifyFormat  string
	classifyNoCache bool
)

func init() {
	ClassifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", formatTable, "Output format: table, json, yaml")
	ClassifyCmd.Flags().BoolVar(&classifyNoCache, "no-cache", false, "Bypass the result cache")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, !classifyNoCache)
	if err != nil {
		return errors.Wrap(err, "build classifier")
	}
	defer p.Close()

	result := p.classifier.Classify(strings.Join(args, " "))
	p.record(cmd.Context(), result)
	return writeResults(cmd.OutOrStdout(), []types.Result{result}, classifyFormat)
}
