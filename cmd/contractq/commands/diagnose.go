package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/contractq/errors"
	"github.com/teranos/contractq/nlq"
)

// DiagnoseCmd prints the output of every pipeline stage for one query
var DiagnoseCmd = &cobra.Command{
	Use:   "diagnose <query...>",
	Short: "Show what every pipeline stage produced",
	Long: `diagnose - Trace a query through the pipeline

Prints the normalized text, spelling correction, tokens, the
multi-intent plan and, per clause, the extracted entities, intent,
routing, repairs, action and confidence breakdown. The cache, metrics
and journal are not touched.

Examples:
  contractq diagnose "show contract details and failed parts for 123456"
  contractq diagnose --format json "account 10840607 contracts"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiagnose,
}

var diagnoseFormat string

func init() {
	DiagnoseCmd.Flags().StringVarP(&diagnoseFormat, "format", "f", formatYAML, "Output format: yaml, json")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Diagnose never caches or journals
	local := *cfg
	local.Journal.Enabled = false

	p, err := newPipeline(&local, false)
	if err != nil {
		return errors.Wrap(err, "build classifier")
	}
	return writeDiagnosis(cmd, p.classifier.Diagnose(strings.Join(args, " ")))
}

func writeDiagnosis(cmd *cobra.Command, d *nlq.Diagnosis) error {
	out := cmd.OutOrStdout()
	if diagnoseFormat == formatYAML {
		fmt.Fprintf(out, "# %s\n", d.Query)
	}
	return writeValue(out, d, diagnoseFormat)
}
